package snowflake

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/de-tools/cost-advisor/pkg/models/domain"
	"github.com/de-tools/cost-advisor/pkg/services/cost"
	"github.com/de-tools/cost-advisor/pkg/services/cost/cur"
	curstore "github.com/de-tools/cost-advisor/pkg/store/cur"
	sf "github.com/snowflakedb/gosnowflake"
)

const Platform = "snowflake"

// SourceFactory opens the report table described by the YAML file at cc.Profile.
func SourceFactory(_ context.Context, cc domain.CloudContext) (cost.Source, error) {
	cfg, err := LoadConfig(cc.Profile)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	dsn, err := sf.DSN(cfg.driverConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to create DSN: %w", err)
	}

	db, err := sql.Open("snowflake", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect: %w", err)
	}

	store, err := curstore.NewStore(db, cfg.Table)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return cur.NewSource(store), nil
}
