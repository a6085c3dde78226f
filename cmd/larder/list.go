// Shopping list commands for the larder CLI.
package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/larder/pkg/types"
)

var (
	listSetCount     int
	listAddQuantity  float64
	listSetQuantity  float64
	listMiscAddName  string
	listMiscAddStore string
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Manage the shopping list",
}

var listShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the aggregated shopping list grouped by store",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := openEnv(cmd.Context())
		if err != nil {
			fatalSys("list show", err)
		}
		defer env.Close()

		view, err := env.shopping.GetAggregated(cmd.Context(), resolveProfile())
		if err != nil {
			fatalSys("list show", err)
		}

		if flagJSON {
			printJSON(view)
			return nil
		}

		for _, group := range view.ByStore {
			if group.Store != nil {
				fmt.Printf("%s:\n", group.Store.Name)
			} else {
				fmt.Println("No store:")
			}
			for _, item := range group.Items {
				mark := " "
				if item.IsChecked {
					mark = "x"
				}
				line := fmt.Sprintf("  [%s] %g %s", mark, item.TotalCount, item.Ingredient.Name)
				if item.IsExcluded {
					line += " (excluded)"
				}
				fmt.Println(line)
			}
		}
		for _, misc := range view.MiscItems {
			mark := " "
			if misc.Checked {
				mark = "x"
			}
			fmt.Printf("  [%s] %s (misc)\n", mark, misc.Name)
		}
		return nil
	},
}

var listAddDishCmd = &cobra.Command{
	Use:   "add-dish <dish-id>",
	Short: "Add one serving of a dish to the list",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := openEnv(cmd.Context())
		if err != nil {
			fatalSys("list add-dish", err)
		}
		defer env.Close()

		if err := env.shopping.AddDish(cmd.Context(), resolveProfile(), args[0]); err != nil {
			fatalSys("list add-dish", err)
		}
		fmt.Println("Added dish:", args[0])
		return nil
	},
}

var listRemoveDishCmd = &cobra.Command{
	Use:   "remove-dish <dish-id>",
	Short: "Remove a dish from the list entirely",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := openEnv(cmd.Context())
		if err != nil {
			fatalSys("list remove-dish", err)
		}
		defer env.Close()

		if err := env.shopping.RemoveDish(cmd.Context(), resolveProfile(), args[0]); err != nil {
			fatalSys("list remove-dish", err)
		}
		fmt.Println("Removed dish:", args[0])
		return nil
	},
}

var listSetCountCmd = &cobra.Command{
	Use:   "set-count <dish-id>",
	Short: "Set how many times a dish is on the list (0 removes it)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := openEnv(cmd.Context())
		if err != nil {
			fatalSys("list set-count", err)
		}
		defer env.Close()

		if err := env.shopping.SetDishCount(cmd.Context(), resolveProfile(), args[0], listSetCount); err != nil {
			fatalSys("list set-count", err)
		}
		fmt.Println("Updated dish count:", args[0])
		return nil
	},
}

var listAddCmd = &cobra.Command{
	Use:   "add <ingredient-id>",
	Short: "Add an ingredient to the list manually",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := openEnv(cmd.Context())
		if err != nil {
			fatalSys("list add", err)
		}
		defer env.Close()

		err = env.shopping.AddManualIngredient(cmd.Context(), resolveProfile(), args[0], listAddQuantity)
		if err != nil {
			if errors.Is(err, types.ErrInvalidQuantity) {
				fatalUser("list add", err)
			}
			fatalSys("list add", err)
		}
		fmt.Println("Added ingredient:", args[0])
		return nil
	},
}

var listSetQuantityCmd = &cobra.Command{
	Use:   "set-quantity <ingredient-id>",
	Short: "Set an ingredient's manual quantity (0 removes it)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := openEnv(cmd.Context())
		if err != nil {
			fatalSys("list set-quantity", err)
		}
		defer env.Close()

		err = env.shopping.SetManualIngredientQuantity(cmd.Context(), resolveProfile(), args[0], listSetQuantity)
		if err != nil {
			fatalSys("list set-quantity", err)
		}
		fmt.Println("Updated quantity:", args[0])
		return nil
	},
}

var listRemoveCmd = &cobra.Command{
	Use:   "remove <ingredient-id>",
	Short: "Remove an ingredient's manual entry",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := openEnv(cmd.Context())
		if err != nil {
			fatalSys("list remove", err)
		}
		defer env.Close()

		if err := env.shopping.RemoveManualIngredient(cmd.Context(), resolveProfile(), args[0]); err != nil {
			fatalSys("list remove", err)
		}
		fmt.Println("Removed ingredient:", args[0])
		return nil
	},
}

var listExcludeCmd = &cobra.Command{
	Use:   "exclude <ingredient-id>",
	Short: "Mark an ingredient as already on hand",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := openEnv(cmd.Context())
		if err != nil {
			fatalSys("list exclude", err)
		}
		defer env.Close()

		if err := env.shopping.ExcludeIngredient(cmd.Context(), resolveProfile(), args[0]); err != nil {
			fatalSys("list exclude", err)
		}
		fmt.Println("Excluded ingredient:", args[0])
		return nil
	},
}

var listIncludeCmd = &cobra.Command{
	Use:   "include <ingredient-id>",
	Short: "Clear the on-hand mark",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := openEnv(cmd.Context())
		if err != nil {
			fatalSys("list include", err)
		}
		defer env.Close()

		if err := env.shopping.IncludeIngredient(cmd.Context(), resolveProfile(), args[0]); err != nil {
			fatalSys("list include", err)
		}
		fmt.Println("Included ingredient:", args[0])
		return nil
	},
}

var listToggleCmd = &cobra.Command{
	Use:   "toggle <ingredient-id>",
	Short: "Toggle an ingredient's bought mark",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := openEnv(cmd.Context())
		if err != nil {
			fatalSys("list toggle", err)
		}
		defer env.Close()

		if err := env.shopping.ToggleItem(cmd.Context(), resolveProfile(), args[0]); err != nil {
			fatalSys("list toggle", err)
		}
		fmt.Println("Toggled ingredient:", args[0])
		return nil
	},
}

var listMiscAddCmd = &cobra.Command{
	Use:   "misc-add",
	Short: "Add a free-text item to the list",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := openEnv(cmd.Context())
		if err != nil {
			fatalSys("list misc-add", err)
		}
		defer env.Close()

		id, err := env.shopping.AddMiscItem(cmd.Context(), resolveProfile(), listMiscAddName, listMiscAddStore)
		if err != nil {
			fatalUser("list misc-add", err)
		}

		if flagJSON {
			printJSON(map[string]string{"item_id": id})
			return nil
		}
		fmt.Println("Added item:", id)
		return nil
	},
}

var listMiscToggleCmd = &cobra.Command{
	Use:   "misc-toggle <item-id>",
	Short: "Toggle a free-text item's checked mark",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := openEnv(cmd.Context())
		if err != nil {
			fatalSys("list misc-toggle", err)
		}
		defer env.Close()

		if err := env.shopping.ToggleMiscItem(cmd.Context(), resolveProfile(), args[0]); err != nil {
			fatalSys("list misc-toggle", err)
		}
		fmt.Println("Toggled item:", args[0])
		return nil
	},
}

var listMiscRemoveCmd = &cobra.Command{
	Use:   "misc-remove <item-id>",
	Short: "Remove a free-text item",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := openEnv(cmd.Context())
		if err != nil {
			fatalSys("list misc-remove", err)
		}
		defer env.Close()

		if err := env.shopping.RemoveMiscItem(cmd.Context(), resolveProfile(), args[0]); err != nil {
			fatalSys("list misc-remove", err)
		}
		fmt.Println("Removed item:", args[0])
		return nil
	},
}

var listClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Reset the shopping list to empty",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := openEnv(cmd.Context())
		if err != nil {
			fatalSys("list clear", err)
		}
		defer env.Close()

		if err := env.shopping.Clear(cmd.Context(), resolveProfile()); err != nil {
			fatalSys("list clear", err)
		}
		fmt.Println("Cleared shopping list")
		return nil
	},
}

func init() {
	listSetCountCmd.Flags().IntVar(&listSetCount, "count", 0, "dish count (required)")
	listSetCountCmd.MarkFlagRequired("count")

	listAddCmd.Flags().Float64Var(&listAddQuantity, "quantity", 1, "quantity to add")
	listSetQuantityCmd.Flags().Float64Var(&listSetQuantity, "quantity", 0, "quantity to set (required)")
	listSetQuantityCmd.MarkFlagRequired("quantity")

	listMiscAddCmd.Flags().StringVar(&listMiscAddName, "name", "", "item name (required)")
	listMiscAddCmd.Flags().StringVar(&listMiscAddStore, "store", "", "store ID the item belongs to")
	listMiscAddCmd.MarkFlagRequired("name")

	listCmd.AddCommand(listShowCmd)
	listCmd.AddCommand(listAddDishCmd)
	listCmd.AddCommand(listRemoveDishCmd)
	listCmd.AddCommand(listSetCountCmd)
	listCmd.AddCommand(listAddCmd)
	listCmd.AddCommand(listSetQuantityCmd)
	listCmd.AddCommand(listRemoveCmd)
	listCmd.AddCommand(listExcludeCmd)
	listCmd.AddCommand(listIncludeCmd)
	listCmd.AddCommand(listToggleCmd)
	listCmd.AddCommand(listMiscAddCmd)
	listCmd.AddCommand(listMiscToggleCmd)
	listCmd.AddCommand(listMiscRemoveCmd)
	listCmd.AddCommand(listClearCmd)
}
