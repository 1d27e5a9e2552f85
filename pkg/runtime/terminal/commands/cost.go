package commands

import (
	"fmt"
	"time"

	"github.com/de-tools/cost-advisor/pkg/adapters"
	"github.com/de-tools/cost-advisor/pkg/models/domain"
	"github.com/de-tools/cost-advisor/pkg/services/account"
	"github.com/spf13/cobra"
)

type CostCmd struct {
	globals  *Globals
	explorer account.Explorer
	platform string
	month    int
	year     int
	now      func() time.Time
}

func NewCostCmd(globals *Globals, explorer account.Explorer) *cobra.Command {
	cc := &CostCmd{globals: globals, explorer: explorer, now: time.Now}
	cmd := &cobra.Command{
		Use:   "cost",
		Short: "Summarize amortized spend for a billing month",
		Args:  cobra.NoArgs,
		RunE:  cc.run,
	}

	cmd.Flags().StringVar(&cc.platform, "platform", "", "Billing platform (defaults to the configured one)")
	cmd.Flags().IntVar(&cc.month, "month", 0, "Billing month 1-12 (defaults to the current month)")
	cmd.Flags().IntVar(&cc.year, "year", 0, "Billing year (defaults to the current year)")

	return cmd
}

func (c *CostCmd) run(cmd *cobra.Command, _ []string) error {
	reporter, err := c.globals.reporter(cmd)
	if err != nil {
		return err
	}

	now := c.now().UTC()
	month, year := c.month, c.year
	if month == 0 {
		month = int(now.Month())
	}
	if year == 0 {
		year = now.Year()
	}
	period, err := domain.NewBillingPeriod(month, year)
	if err != nil {
		return err
	}

	ctx, cancel := c.globals.context(cmd)
	defer cancel()

	cloud, err := c.explorer.ResolveContext(ctx, c.globals.Profile, c.globals.Region)
	if err != nil {
		return fmt.Errorf("failed to resolve profile: %w", err)
	}

	agg, err := c.explorer.GetCostAggregator(ctx, c.platform, cloud)
	if err != nil {
		return err
	}

	summary, err := agg.Summarize(ctx, period)
	if err != nil {
		return fmt.Errorf("failed to summarize cost: %w", err)
	}

	return reporter.CostSummary(adapters.MapCostSummaryDomainToApi(summary))
}
