package client

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/dx3rd-api/internal/handlers/dx3rd/v1alpha1"
)

var setFieldItem string

var setFieldCmd = &cobra.Command{
	Use:   "set-field [actor-id] [path] [value]",
	Short: "Write one field on an actor or item",
	Long: `Write one dot-path field. The value is parsed as JSON and falls back to a
plain string. Examples:

  set-field kaito name '"Kaito Mishima"'
  set-field kaito system.attack 4 --item blade
  set-field kaito system.active.state true --item haste`,
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		var value interface{}
		if err := json.Unmarshal([]byte(args[2]), &value); err != nil {
			value = args[2]
		}
		return call(v1alpha1.MethodApplyFieldChange, v1alpha1.FieldChangeRequest{
			ActorID: args[0],
			ItemID:  setFieldItem,
			Path:    args[1],
			Value:   value,
		})
	},
}

var toggleEquipmentCmd = &cobra.Command{
	Use:   "toggle-equipment [actor-id] [item-id]",
	Short: "Equip or unequip an item",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return call(v1alpha1.MethodToggleEquipment, v1alpha1.EquipmentRequest{
			ActorID: args[0],
			ItemID:  args[1],
		})
	},
}

func init() {
	setFieldCmd.Flags().StringVar(&setFieldItem, "item", "", "write to this item instead of the actor")
}
