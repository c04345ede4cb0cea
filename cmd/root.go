package cmd

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/abhisek/nanoclass/internal/llm"
	"github.com/abhisek/nanoclass/internal/logging"
	"github.com/abhisek/nanoclass/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "nanoclass",
	Short: "AI lesson builder for early-years teachers",
	Long:  "NanoClass — describe a topic, get an illustrated slide lesson with a quiz, edit it and play it back in the terminal.",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// A missing .env is fine; variables may come from the shell.
		_ = godotenv.Load()
		logging.SetupConsole()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides NANOCLASS_DB env var)")
	rootCmd.PersistentFlags().String("log", "", "Path to log file used while the TUI runs (overrides NANOCLASS_LOG env var)")

	rootCmd.AddCommand(draftCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then NANOCLASS_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}

// openStore opens the database selected by --db or the environment.
func openStore(cmd *cobra.Command) (*store.Store, error) {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	s, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return s, nil
}

// resolveLogPath returns the log file path using --log, then NANOCLASS_LOG,
// then the default XDG state path.
func resolveLogPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("log"); p != "" {
		return p, nil
	}
	return logging.DefaultPath()
}

// loadLLMConfig reads NANOCLASS_* settings. Without an explicit provider the
// first vendor key found in the environment picks one.
func loadLLMConfig() llm.Config {
	if os.Getenv("NANOCLASS_LLM_PROVIDER") == "" {
		if cfg, ok := llm.DiscoverConfig(); ok {
			return cfg
		}
	}
	return llm.ConfigFromEnv()
}
