package cmd

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/abhisek/flashwiz/internal/momentum"
	"github.com/abhisek/flashwiz/internal/progress"
	"github.com/abhisek/flashwiz/internal/rarity"
	"github.com/abhisek/flashwiz/internal/store"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show level, streak, momentum and battle history",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		st, cfg, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		ctx := cmd.Context()
		p, err := st.ProgressRepo().LoadProgress(ctx, cfg.UserID)
		if err != nil {
			return fmt.Errorf("load progress: %w", err)
		}
		answers, err := st.EventRepo().AnswerStats(ctx, cfg.UserID)
		if err != nil {
			return fmt.Errorf("answer stats: %w", err)
		}
		battles, err := st.EventRepo().RecentBattles(ctx, cfg.UserID, store.QueryOpts{Limit: limit})
		if err != nil {
			return fmt.Errorf("recent battles: %w", err)
		}

		names := make(map[string]string)
		if decks, err := st.DeckRepo().ListDecks(ctx); err == nil {
			for _, d := range decks {
				names[d.ID] = d.Name
			}
		}

		out := cmd.OutOrStdout()
		printProgress(out, cfg.UserID, p)
		printAnswerStats(out, answers)
		printBattles(out, battles, names)
		return nil
	},
}

func printProgress(out io.Writer, user string, p progress.Progress) {
	state := momentum.StateFor(p.MomentumScore)
	last := p.LastActiveDate
	if last == "" {
		last = "never"
	}

	fmt.Fprintf(out, "Learner: %s\n", user)
	fmt.Fprintln(out, strings.Repeat("─", 48))
	fmt.Fprintf(out, "  %-18s %d (%d/%d XP to next)\n", "Level", p.Level, p.XPIntoLevel(), progress.XPPerLevel)
	fmt.Fprintf(out, "  %-18s %d\n", "Total XP", p.XP)
	fmt.Fprintf(out, "  %-18s %d day(s), last active %s\n", "Streak", p.CurrentStreak, last)
	fmt.Fprintf(out, "  %-18s %s %s (%d)\n", "Momentum", state.Icon, state.Name, p.MomentumScore)
	fmt.Fprintf(out, "  %-18s %.0f%% over last %d answers\n", "Rolling accuracy", p.RollingAccuracy, len(p.RecentAnswers))
	fmt.Fprintln(out)
}

func printAnswerStats(out io.Writer, a store.AnswerStats) {
	fmt.Fprintf(out, "Answers: %d   Correct: %d   Accuracy: %.0f%%   XP earned: %d\n",
		a.Answered, a.Correct, a.Accuracy()*100, a.XP)
	if a.Answered == 0 {
		fmt.Fprintln(out)
		return
	}
	fmt.Fprintf(out, "  %-14s  %8s  %7s  %6s\n", "Rarity", "Answered", "Correct", "XP")
	for _, t := range rarity.AllTiers() {
		ts, ok := a.ByTier[string(t)]
		if !ok {
			continue
		}
		fmt.Fprintf(out, "  %-14s  %8d  %7d  %6d\n", t.Icon()+" "+t.DisplayName(), ts.Answered, ts.Correct, ts.XP)
	}
	fmt.Fprintln(out)
}

func printBattles(out io.Writer, battles []store.BattleEvent, deckNames map[string]string) {
	if len(battles) == 0 {
		fmt.Fprintln(out, "No battles yet.")
		return
	}
	fmt.Fprintf(out, "%-16s  %-24s  %7s  %6s  %5s  %s\n", "When", "Deck", "Correct", "XP", "Time", "Momentum")
	fmt.Fprintln(out, strings.Repeat("─", 100))
	for _, b := range battles {
		dur := time.Duration(b.DurationSecs) * time.Second
		deck := deckNames[b.DeckID]
		if deck == "" {
			deck = b.DeckID
		}
		fmt.Fprintf(out, "%-16s  %-24s  %3d/%-3d  %6d  %5s  %d → %d\n",
			b.Timestamp.Local().Format("2006-01-02 15:04"),
			clip(deck, 24),
			b.Correct, b.Answered,
			b.XPEarned,
			fmt.Sprintf("%d:%02d", int(dur.Minutes()), b.DurationSecs%60),
			b.MomentumStart, b.MomentumEnd,
		)
	}
}

func init() {
	statsCmd.Flags().Int("limit", 10, "Number of recent battles to show")
}
