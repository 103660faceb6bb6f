package client

import (
	"github.com/spf13/cobra"

	"github.com/KirkDiggler/dx3rd-api/internal/handlers/dx3rd/v1alpha1"
)

var weaponsCmd = &cobra.Command{
	Use:   "weapons [actor-id]",
	Short: "List an actor's weapons and vehicles in picker order",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return call(v1alpha1.MethodListWeaponOptions, v1alpha1.ActorRequest{ActorID: args[0]})
	},
}

var aggregateCmd = &cobra.Command{
	Use:   "aggregate [actor-id] [item-id...]",
	Short: "Total the attack bonus of the picked items",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return call(v1alpha1.MethodAggregateWeapons, v1alpha1.WeaponSelectionRequest{
			ActorID: args[0],
			ItemIDs: args[1:],
		})
	},
}

var consumeAttackCmd = &cobra.Command{
	Use:   "consume-attack [actor-id] [item-id...]",
	Short: "Attack with the picked items and spend their attack allowance",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return call(v1alpha1.MethodConsumeAttack, v1alpha1.WeaponSelectionRequest{
			ActorID: args[0],
			ItemIDs: args[1:],
		})
	},
}
