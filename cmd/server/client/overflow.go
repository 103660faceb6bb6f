package client

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/dx3rd-api/internal/handlers/dx3rd/v1alpha1"
)

var (
	overflowPool     []int
	overflowDice     int
	overflowDisabled []int
	overflowMode     string
	overflowCount    int
	overflowTotal    int
)

var overflowCmd = &cobra.Command{
	Use:   "overflow",
	Short: "Spell overflow dice selection",
}

var overflowStartCmd = &cobra.Command{
	Use:   "start [actor-id]",
	Short: "Open a selection over a pool or a fresh roll",
	Long: `Open a selection session. Examples:

  overflow start kaito --pool 10,3,10,7 --mode overflow_only --count 2
  overflow start kaito --dice 6 --count 1`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		req := v1alpha1.StartSelectionRequest{
			Pool:      overflowPool,
			DiceCount: overflowDice,
			Disabled:  overflowDisabled,
			Mode:      overflowMode,
		}
		if len(args) == 1 {
			req.ActorID = args[0]
		}
		if cmd.Flags().Changed("count") {
			count := overflowCount
			req.Count = &count
		}
		if cmd.Flags().Changed("total") {
			total := overflowTotal
			req.OverrideTotal = &total
		}
		return call(v1alpha1.MethodStartOverflowSelection, req)
	},
}

var overflowToggleCmd = &cobra.Command{
	Use:   "toggle [session-id] [index]",
	Short: "Select or deselect one die",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		index, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("index must be a number: %w", err)
		}
		return call(v1alpha1.MethodToggleOverflowDie, v1alpha1.ToggleDieRequest{
			SessionID: args[0],
			Index:     &index,
		})
	},
}

var overflowConfirmCmd = &cobra.Command{
	Use:   "confirm [session-id]",
	Short: "Confirm the selection and list the dice to remove",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return call(v1alpha1.MethodConfirmOverflowSelection, v1alpha1.SessionRequest{SessionID: args[0]})
	},
}

var overflowCancelCmd = &cobra.Command{
	Use:   "cancel [session-id]",
	Short: "Discard a selection",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return call(v1alpha1.MethodCancelOverflowSelection, v1alpha1.SessionRequest{SessionID: args[0]})
	},
}

func init() {
	overflowStartCmd.Flags().IntSliceVar(&overflowPool, "pool", nil, "dice faces, comma separated")
	overflowStartCmd.Flags().IntVar(&overflowDice, "dice", 0, "roll this many d10 when no pool is given")
	overflowStartCmd.Flags().IntSliceVar(&overflowDisabled, "disabled", nil, "indices that cannot be selected")
	overflowStartCmd.Flags().StringVar(&overflowMode, "mode", "exact", "exact or overflow_only")
	overflowStartCmd.Flags().IntVar(&overflowCount, "count", 1, "dice to select; 0 with exact mode confirms an empty selection")
	overflowStartCmd.Flags().IntVar(&overflowTotal, "total", 0, "override the pool total")

	overflowCmd.AddCommand(overflowStartCmd)
	overflowCmd.AddCommand(overflowToggleCmd)
	overflowCmd.AddCommand(overflowConfirmCmd)
	overflowCmd.AddCommand(overflowCancelCmd)
}
