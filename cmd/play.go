package cmd

import (
	"github.com/spf13/cobra"
)

var playCmd = &cobra.Command{
	Use:   "play <deck>",
	Short: "Start a battle with a deck (by id or name)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd, args[0])
	},
}

func init() {
	playCmd.Flags().Int("size", 0, "Number of cards in the battle (default from config)")
}
