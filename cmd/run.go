package cmd

import (
	"errors"
	"fmt"

	"github.com/abhisek/flashwiz/internal/app"
	"github.com/abhisek/flashwiz/internal/logger"
	battlescreen "github.com/abhisek/flashwiz/internal/screens/battle"
	"github.com/abhisek/flashwiz/internal/store"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// runApp opens the store, builds the battle session and launches the TUI.
// A non-empty deck starts a battle straight away.
func runApp(cmd *cobra.Command, deck string) error {
	st, cfg, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer st.Close()

	if n, _ := cmd.Flags().GetInt("size"); n > 0 {
		cfg.Tuning.Battle.BattleSize = n
	}
	sess := newSession(cfg, st)
	opts := app.Options{
		Session: sess,
		Decks:   st.DeckRepo(),
		Events:  st.EventRepo(),
		UserID:  cfg.UserID,
	}

	if deck != "" {
		d, err := st.DeckRepo().FindDeck(cmd.Context(), deck)
		if err != nil {
			return deckLookupError(deck, err)
		}
		if err := sess.Start(cmd.Context(), d.ID); err != nil {
			return fmt.Errorf("start battle: %w", err)
		}
		opts.Initial = battlescreen.New(sess)
	}

	logger.Logger.Info("starting tui", zap.String("user", cfg.UserID), zap.String("db", cfg.DBPath))
	return app.Run(opts)
}

func deckLookupError(deck string, err error) error {
	if errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("deck %q not found (see `flashwiz deck list`)", deck)
	}
	return err
}
