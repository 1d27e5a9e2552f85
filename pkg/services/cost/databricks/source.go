package databricks

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"strings"

	_ "github.com/databricks/databricks-sql-go"
	"github.com/de-tools/cost-advisor/pkg/models/domain"
	"github.com/de-tools/cost-advisor/pkg/services/cost"
	"github.com/de-tools/cost-advisor/pkg/services/cost/cur"
	curstore "github.com/de-tools/cost-advisor/pkg/store/cur"
)

const Platform = "databricks"

// SourceFactory opens the report table described by the YAML file at cc.Profile.
func SourceFactory(_ context.Context, cc domain.CloudContext) (cost.Source, error) {
	cfg, err := LoadConfig(cc.Profile)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.ResolveCredentials(); err != nil {
		return nil, err
	}

	db, err := sql.Open("databricks", DSN(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Databricks: %w", err)
	}

	store, err := curstore.NewStore(db, cfg.Table)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return cur.NewSource(store), nil
}

// DSN renders the connection string understood by the Databricks SQL driver.
func DSN(cfg *Config) string {
	host := strings.TrimSuffix(strings.TrimPrefix(cfg.Host, "https://"), "/")
	dsn := fmt.Sprintf("token:%s@%s%s", cfg.Token, host, cfg.HTTPPath)

	params := url.Values{}
	if cfg.Catalog != "" {
		params.Set("catalog", cfg.Catalog)
	}
	if cfg.Schema != "" {
		params.Set("schema", cfg.Schema)
	}
	if len(params) > 0 {
		dsn += "?" + params.Encode()
	}
	return dsn
}
