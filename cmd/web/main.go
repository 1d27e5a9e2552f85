package main

import (
	"fmt"
	"net"
	"os"

	"github.com/de-tools/cost-advisor/pkg/server"
	"github.com/de-tools/cost-advisor/pkg/services/account"
	"github.com/de-tools/cost-advisor/pkg/services/advisor"
	"github.com/de-tools/cost-advisor/pkg/services/config"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var cfgPath string

func main() {
	var rootCmd = &cobra.Command{
		Use:   "web",
		Short: "Start the web server for the cost advisor",
		RunE:  runServer,
	}

	rootCmd.Flags().StringVarP(&cfgPath, "config", "c", os.Getenv("ADVISOR_CONFIG"),
		"Path to the advisor.yaml file (settings can also come from ADVISOR_* variables)")

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func runServer(cmd *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Error loading .env file: %v\n", err)
	}

	settings, err := config.LoadSettings(cfgPath)
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	level, err := zerolog.ParseLevel(settings.Log.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	logger := zerolog.New(os.Stdout).Level(level).With().Timestamp().Logger()
	ctx := logger.WithContext(cmd.Context())

	configPath, credentialsPath, err := config.DefaultPaths()
	if err != nil {
		return err
	}
	profiles, err := config.NewRegistry(configPath, credentialsPath)
	if err != nil {
		return fmt.Errorf("failed to create profile registry: %w", err)
	}

	sources, err := account.NewSourceRegistry()
	if err != nil {
		return fmt.Errorf("failed to register billing sources: %w", err)
	}

	accountExplorer := account.NewExplorer(account.Dependencies{
		Profiles: profiles,
		Advisors: advisor.NewFactory(settings.AdvisorSettings()),
		Sources:  sources,
		Defaults: settings.CloudContext(),
		Billing:  settings.Billing,
	})

	logger.Info().Msgf("AWS configuration found at `%s` successfully loaded.", configPath)
	logger.Info().Msgf("Found the following profiles:")
	found, _ := profiles.GetProfiles(ctx)
	for _, profile := range found {
		logger.Info().Msgf("Name: `%s`, Type: `%s`", profile.Name, profile.Type)
	}
	logger.Info().Strs("platforms", sources.ListPlatforms()).Msg("billing platforms registered")

	api := server.NewWebAPI(server.Config{
		Addr:            net.JoinHostPort(settings.Server.Host, settings.Server.Port),
		ShutdownTimeout: settings.Server.ShutdownTimeout,
		Dependencies: server.Dependencies{
			Account: accountExplorer,
			Logger:  logger,
		},
	})

	return api.Start()
}
