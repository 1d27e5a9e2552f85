package account

import (
	"github.com/de-tools/cost-advisor/pkg/services/cost"
	"github.com/de-tools/cost-advisor/pkg/services/cost/aws_ce"
	"github.com/de-tools/cost-advisor/pkg/services/cost/azure"
	"github.com/de-tools/cost-advisor/pkg/services/cost/databricks"
	"github.com/de-tools/cost-advisor/pkg/services/cost/snowflake"
)

// NewSourceRegistry registers every billing platform the advisor can summarize.
func NewSourceRegistry() (cost.Registry, error) {
	registry := cost.NewRegistry()
	for platform, factory := range map[string]cost.SourceFactory{
		aws_ce.Platform:     aws_ce.SourceFactory,
		azure.Platform:      azure.SourceFactory,
		databricks.Platform: databricks.SourceFactory,
		snowflake.Platform:  snowflake.SourceFactory,
	} {
		if err := registry.Register(platform, factory); err != nil {
			return nil, err
		}
	}
	return registry, nil
}
