package client

import (
	"github.com/spf13/cobra"

	"github.com/KirkDiggler/dx3rd-api/internal/handlers/dx3rd/v1alpha1"
)

var sweepTarget string

var sweepCmd = &cobra.Command{
	Use:   "sweep [timing] [actor-id...]",
	Short: "Expire everything tied to a timing",
	Long: `Fire a timing and expire the toggles, usage counters and effects it ends. Examples:

  sweep round                       # every character on the active scene
  sweep scene kaito --target one
  sweep session kaito rina`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return call(v1alpha1.MethodSweep, v1alpha1.SweepRequest{
			Timing:   args[0],
			Target:   sweepTarget,
			ActorIDs: args[1:],
		})
	},
}

func init() {
	sweepCmd.Flags().StringVar(&sweepTarget, "target", "", "all, one or many (defaults from the actor IDs given)")
}
