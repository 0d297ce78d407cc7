package cmd

import (
	"fmt"
	"strings"

	"github.com/abhisek/flashwiz/internal/store"
	"github.com/spf13/cobra"
)

var cardCmd = &cobra.Command{
	Use:   "card",
	Short: "Manage deck cards",
}

var cardAddCmd = &cobra.Command{
	Use:   "add <deck> <front> <back>",
	Short: "Add a card to a deck",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		aliases, _ := cmd.Flags().GetStringSlice("alias")

		st, _, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		c, err := st.DeckRepo().AddCard(cmd.Context(), args[0], store.NewCard{
			Front:   args[1],
			Back:    args[2],
			Aliases: aliases,
		})
		if err != nil {
			return deckLookupError(args[0], err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Added card %s\n", c.ID)
		return nil
	},
}

var cardListCmd = &cobra.Command{
	Use:   "list <deck>",
	Short: "List a deck's cards and concepts",
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
		cs, err := repo.ListCards(cmd.Context(), d.ID)
		if err != nil {
			return err
		}
		concepts, err := repo.ListConcepts(cmd.Context(), d.ID)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%-8s  %-32s  %-24s  %-10s  %s\n", "Kind", "Prompt", "Answer", "SRS", "Due")
		fmt.Fprintln(out, strings.Repeat("─", 100))
		for _, c := range cs {
			due := "-"
			if !c.SRS.Due.IsZero() {
				due = c.SRS.Due.Local().Format("2006-01-02 15:04")
			}
			fmt.Fprintf(out, "%-8s  %-32s  %-24s  %-10s  %s\n",
				"card", clip(c.Front, 32), clip(c.Back, 24), c.SRS.State, due)
		}
		for _, c := range concepts {
			diff := "-"
			if c.Difficulty != nil {
				diff = fmt.Sprintf("%.2f", *c.Difficulty)
			}
			fmt.Fprintf(out, "%-8s  %-32s  %-24s  %-10s  %s\n",
				"concept", clip(c.Prompt, 32), clip(c.Answer, 24), "diff "+diff, "-")
		}
		fmt.Fprintf(out, "\n%d cards, %d concepts\n", len(cs), len(concepts))
		return nil
	},
}

var conceptCmd = &cobra.Command{
	Use:   "concept",
	Short: "Manage deck concepts",
}

var conceptAddCmd = &cobra.Command{
	Use:   "add <deck> <prompt> <answer>",
	Short: "Add a concept to a deck",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		aliases, _ := cmd.Flags().GetStringSlice("alias")
		in := store.NewConcept{
			Prompt:  args[1],
			Answer:  args[2],
			Aliases: aliases,
		}
		if cmd.Flags().Changed("difficulty") {
			d, _ := cmd.Flags().GetFloat64("difficulty")
			if d < 0 || d > 1 {
				return fmt.Errorf("difficulty must be between 0 and 1, got %v", d)
			}
			in.Difficulty = &d
		}

		st, _, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		c, err := st.DeckRepo().AddConcept(cmd.Context(), args[0], in)
		if err != nil {
			return deckLookupError(args[0], err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Added concept %s\n", c.ID)
		return nil
	},
}

func clip(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

func init() {
	cardAddCmd.Flags().StringSlice("alias", nil, "Additional accepted answer (repeatable)")
	conceptAddCmd.Flags().StringSlice("alias", nil, "Additional accepted answer (repeatable)")
	conceptAddCmd.Flags().Float64("difficulty", 0, "Difficulty between 0 and 1; sets the rarity score directly")

	cardCmd.AddCommand(cardAddCmd)
	cardCmd.AddCommand(cardListCmd)
	conceptCmd.AddCommand(conceptAddCmd)
}
