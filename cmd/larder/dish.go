// Dish commands for the larder CLI.
package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/larder/pkg/types"
)

var (
	dishAddName     string
	dishAddItems    []string
	dishUpdateName  string
	dishUpdateItems []string
)

var dishCmd = &cobra.Command{
	Use:   "dish",
	Short: "Manage dish templates",
}

// parseDishItems parses repeated --item flags of the form
// "<ingredient-id>=<quantity>".
func parseDishItems(raw []string) ([]types.DishItem, error) {
	items := make([]types.DishItem, 0, len(raw))
	for _, r := range raw {
		id, qtyStr, ok := strings.Cut(r, "=")
		if !ok {
			return nil, fmt.Errorf("invalid item %q, expected <ingredient-id>=<quantity>", r)
		}
		qty, err := strconv.ParseFloat(qtyStr, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid quantity in item %q: %w", r, err)
		}
		items = append(items, types.DishItem{IngredientID: id, Quantity: qty})
	}
	return items, nil
}

var dishListCmd = &cobra.Command{
	Use:   "list",
	Short: "List dishes with their ingredients",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := openEnv(cmd.Context())
		if err != nil {
			fatalSys("dish list", err)
		}
		defer env.Close()

		details, err := env.dishes.ListDishesWithIngredients(cmd.Context(), resolveProfile())
		if err != nil {
			fatalSys("dish list", err)
		}

		if flagJSON {
			printJSON(details)
			return nil
		}
		for _, d := range details {
			fmt.Printf("%s  %s\n", d.Dish.DishID, d.Dish.Name)
			for _, item := range d.Items {
				name := item.IngredientID
				if item.Ingredient != nil {
					name = item.Ingredient.Name
				}
				fmt.Printf("    %g x %s\n", item.Quantity, name)
			}
		}
		return nil
	},
}

var dishAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a dish template",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		items, err := parseDishItems(dishAddItems)
		if err != nil {
			fatalUser("dish add", err)
		}

		env, err := openEnv(cmd.Context())
		if err != nil {
			fatalSys("dish add", err)
		}
		defer env.Close()

		id, err := env.dishes.CreateDish(cmd.Context(), resolveProfile(), dishAddName, items)
		if err != nil {
			fatalUser("dish add", err)
		}

		if flagJSON {
			printJSON(map[string]string{"dish_id": id})
			return nil
		}
		fmt.Println("Created dish:", id)
		return nil
	},
}

var dishUpdateCmd = &cobra.Command{
	Use:   "update <dish-id>",
	Short: "Overwrite a dish's name and ingredients",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		items, err := parseDishItems(dishUpdateItems)
		if err != nil {
			fatalUser("dish update", err)
		}

		env, err := openEnv(cmd.Context())
		if err != nil {
			fatalSys("dish update", err)
		}
		defer env.Close()

		if err := env.dishes.UpdateDish(cmd.Context(), args[0], dishUpdateName, items); err != nil {
			if errors.Is(err, types.ErrNotFound) || errors.Is(err, types.ErrInvalidQuantity) {
				fatalUser("dish update", err)
			}
			fatalSys("dish update", err)
		}
		fmt.Println("Updated dish:", args[0])
		return nil
	},
}

var dishRemoveCmd = &cobra.Command{
	Use:   "remove <dish-id>",
	Short: "Remove a dish template",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := openEnv(cmd.Context())
		if err != nil {
			fatalSys("dish remove", err)
		}
		defer env.Close()

		if err := env.dishes.RemoveDish(cmd.Context(), args[0]); err != nil {
			if errors.Is(err, types.ErrNotFound) {
				fatalUser("dish remove", err)
			}
			fatalSys("dish remove", err)
		}
		fmt.Println("Removed dish:", args[0])
		return nil
	},
}

func init() {
	dishAddCmd.Flags().StringVar(&dishAddName, "name", "", "dish name (required)")
	dishAddCmd.Flags().StringArrayVar(&dishAddItems, "item", nil, "dish item as <ingredient-id>=<quantity>, repeatable")
	dishAddCmd.MarkFlagRequired("name")

	dishUpdateCmd.Flags().StringVar(&dishUpdateName, "name", "", "dish name (required)")
	dishUpdateCmd.Flags().StringArrayVar(&dishUpdateItems, "item", nil, "dish item as <ingredient-id>=<quantity>, repeatable")
	dishUpdateCmd.MarkFlagRequired("name")

	dishCmd.AddCommand(dishListCmd)
	dishCmd.AddCommand(dishAddCmd)
	dishCmd.AddCommand(dishUpdateCmd)
	dishCmd.AddCommand(dishRemoveCmd)
}
