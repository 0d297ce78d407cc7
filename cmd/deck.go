package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var deckCmd = &cobra.Command{
	Use:   "deck",
	Short: "Manage decks",
}

var deckCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a deck",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, _, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		d, err := st.DeckRepo().CreateDeck(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Created deck %q (%s)\n", d.Name, d.ID)
		return nil
	},
}

var deckListCmd = &cobra.Command{
	Use:   "list",
	Short: "List decks with their card and concept counts",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, _, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		decks, err := st.DeckRepo().ListDecks(cmd.Context())
		if err != nil {
			return fmt.Errorf("list decks: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(decks) == 0 {
			fmt.Fprintln(out, "No decks yet. Create one with `flashwiz deck create <name>`.")
			return nil
		}

		fmt.Fprintf(out, "%-36s  %-24s  %5s  %8s\n", "ID", "Name", "Cards", "Concepts")
		fmt.Fprintln(out, strings.Repeat("─", 80))
		for _, d := range decks {
			name := d.Name
			if len(name) > 24 {
				name = name[:21] + "..."
			}
			fmt.Fprintf(out, "%-36s  %-24s  %5d  %8d\n", d.ID, name, d.Cards, d.Concepts)
		}
		fmt.Fprintf(out, "\n%d decks\n", len(decks))
		return nil
	},
}

var deckDeleteCmd = &cobra.Command{
	Use:   "delete <deck>",
	Short: "Delete a deck with all of its cards and concepts",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, _, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		repo := st.DeckRepo()
		d, err := repo.FindDeck(cmd.Context(), args[0])
		if err != nil {
			return deckLookupError(args[0], err)
		}
		if err := repo.DeleteDeck(cmd.Context(), d.ID); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted deck %q\n", d.Name)
		return nil
	},
}

func init() {
	deckCmd.AddCommand(deckCreateCmd)
	deckCmd.AddCommand(deckListCmd)
	deckCmd.AddCommand(deckDeleteCmd)
}
