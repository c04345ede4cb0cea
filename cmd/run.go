package cmd

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/abhisek/nanoclass/internal/app"
	"github.com/abhisek/nanoclass/internal/credential"
	"github.com/abhisek/nanoclass/internal/gateway"
	"github.com/abhisek/nanoclass/internal/logging"
	"github.com/abhisek/nanoclass/internal/store"
)

// runApp opens the store, resolves the API key, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	ctx := cmd.Context()

	logPath, err := resolveLogPath(cmd)
	if err != nil {
		return fmt.Errorf("resolve log path: %w", err)
	}
	logFile, err := logging.SetupFile(logPath)
	if err != nil {
		return fmt.Errorf("open log: %w", err)
	}
	defer logFile.Close()

	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	eventRepo := st.EventRepo()
	creds := credential.New(st.SettingsRepo())
	cfg := loadLLMConfig()

	opts := app.Options{
		Client:      gateway.Unconfigured,
		LLMConfig:   cfg,
		Credentials: creds,
		EventRepo:   eventRepo,
	}

	key, source, err := creds.Resolve(ctx, cfg.APIKey())
	if err != nil {
		log.Warn().Err(err).Msg("could not read stored API key")
	}
	if source != credential.SourceNone {
		opts.HasKey = true
		client, err := gateway.NewFromConfig(ctx, cfg.WithAPIKey(key), eventRepo)
		if err != nil {
			// Drafts will report the key problem on the topic screen.
			log.Warn().Err(err).Str("source", string(source)).Msg("AI client not configured")
		}
		opts.Client = client
	}

	log.Info().Str("db", dbPath).Bool("has_key", opts.HasKey).Msg("starting nanoclass")
	return app.Run(opts)
}
