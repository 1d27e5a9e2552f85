package main

import (
	"context"
	"fmt"
	"os"

	"github.com/de-tools/cost-advisor/pkg/runtime/terminal"
	"github.com/de-tools/cost-advisor/pkg/services/account"
	"github.com/de-tools/cost-advisor/pkg/services/advisor"
	"github.com/de-tools/cost-advisor/pkg/services/config"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

func main() {
	// .env is optional for the CLI
	_ = godotenv.Load()

	settings, err := config.LoadSettings(os.Getenv("ADVISOR_CONFIG"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	level, err := zerolog.ParseLevel(settings.Log.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().
		Timestamp().
		Logger()
	ctx := logger.WithContext(context.Background())

	explorer, err := newExplorer(settings)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize advisor")
	}

	cli := terminal.NewCLI(terminal.Options{
		Explorer: explorer,
		Output:   os.Stdout,
		Profile:  settings.AWS.Profile,
		Region:   settings.AWS.Region,
	})

	if err := cli.Execute(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newExplorer(settings *config.Settings) (account.Explorer, error) {
	configPath, credentialsPath, err := config.DefaultPaths()
	if err != nil {
		return nil, err
	}
	profiles, err := config.NewRegistry(configPath, credentialsPath)
	if err != nil {
		return nil, err
	}
	sources, err := account.NewSourceRegistry()
	if err != nil {
		return nil, err
	}

	return account.NewExplorer(account.Dependencies{
		Profiles: profiles,
		Advisors: advisor.NewFactory(settings.AdvisorSettings()),
		Sources:  sources,
		Defaults: settings.CloudContext(),
		Billing:  settings.Billing,
	}), nil
}
