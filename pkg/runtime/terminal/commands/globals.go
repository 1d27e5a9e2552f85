package commands

import (
	"context"
	"time"

	"github.com/de-tools/cost-advisor/pkg/runtime/terminal/export"
	"github.com/spf13/cobra"
)

// Globals holds the persistent flags shared by every command.
type Globals struct {
	Profile string
	Region  string
	Output  string
	Timeout time.Duration
}

func (g *Globals) reporter(cmd *cobra.Command) (*export.Reporter, error) {
	format, err := export.ParseFormat(g.Output)
	if err != nil {
		return nil, err
	}
	return export.NewReporter(cmd.OutOrStdout(), format), nil
}

func (g *Globals) context(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if g.Timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, g.Timeout)
}
