package cmd

import (
	"fmt"

	"github.com/abhisek/flashwiz/internal/battle"
	"github.com/abhisek/flashwiz/internal/config"
	"github.com/abhisek/flashwiz/internal/logger"
	"github.com/abhisek/flashwiz/internal/store"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "flashwiz",
	Short: "Flashcard battles in your terminal",
	Long:  "Flashwiz turns your flashcard decks into Wizard battles: rarity-ranked cards, XP, levels and a momentum meter.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd, "")
	},
	SilenceUsage: true,
}

func Execute() error {
	defer logger.Sync()
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides FLASHWIZ_DB env var)")
	rootCmd.PersistentFlags().String("config", "", "Path to a flashwiz.yaml config file")
	rootCmd.PersistentFlags().String("user", "", "Learner id whose progress is used (overrides FLASHWIZ_USER)")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(deckCmd)
	rootCmd.AddCommand(cardCmd)
	rootCmd.AddCommand(conceptCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig reads configuration, applies flag overrides (highest priority)
// and initializes the file logger.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		cfg.DBPath = p
	}
	if u, _ := cmd.Flags().GetString("user"); u != "" {
		cfg.UserID = u
	}
	if err := store.EnsureDir(cfg.DBPath); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	if err := logger.Init(cfg.Log.Level, cfg.LogFile()); err != nil {
		return nil, err
	}
	return cfg, nil
}

// openStore loads configuration and opens the database. Callers close the
// store.
func openStore(cmd *cobra.Command) (*store.Store, *config.Config, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, nil, err
	}
	st, err := store.Open(cfg.DBPath)
	if err != nil {
		return nil, nil, fmt.Errorf("open database: %w", err)
	}
	return st, cfg, nil
}

// newSession wires a battle session to the store.
func newSession(cfg *config.Config, st *store.Store) *battle.Session {
	deps := battle.Deps{
		UserID:   cfg.UserID,
		Pool:     st.DeckRepo(),
		Progress: st.ProgressRepo(),
		SRS:      st.DeckRepo(),
		Events:   st.EventRepo(),
		Logger:   logger.Named("battle"),
	}
	if cfg.Seed != 0 {
		deps.Rand = battle.NewRand(cfg.Seed)
	}
	return battle.NewSession(deps, cfg.Tuning)
}
