package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"strings"

	"github.com/abhisek/flashwiz/internal/store"
	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset the learner's XP, level, streak and momentum",
	Long:  "Deletes the learner's progress document. Decks, cards and battle history are kept.",
	RunE: func(cmd *cobra.Command, args []string) error {
		yes, _ := cmd.Flags().GetBool("yes")

		st, cfg, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		if !yes {
			fmt.Fprintf(cmd.OutOrStdout(), "Reset progress for %q? [y/N] ", cfg.UserID)
			line, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
			if a := strings.ToLower(strings.TrimSpace(line)); a != "y" && a != "yes" {
				fmt.Fprintln(cmd.OutOrStdout(), "Aborted.")
				return nil
			}
		}

		err = st.ProgressRepo().Reset(cmd.Context(), cfg.UserID)
		switch {
		case errors.Is(err, store.ErrNotFound):
			fmt.Fprintf(cmd.OutOrStdout(), "No progress stored for %q.\n", cfg.UserID)
			return nil
		case err != nil:
			return fmt.Errorf("reset progress: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Progress for %q reset.\n", cfg.UserID)
		return nil
	},
}

func init() {
	resetCmd.Flags().BoolP("yes", "y", false, "Skip the confirmation prompt")
}
