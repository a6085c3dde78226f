// Ingredient commands for the larder CLI.
package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/larder/pkg/types"
)

var (
	ingredientQuery       string
	ingredientAddName     string
	ingredientAddStore    string
	ingredientUpdateName  string
	ingredientUpdateStore string
)

var ingredientCmd = &cobra.Command{
	Use:   "ingredient",
	Short: "Manage the ingredient catalog",
}

var ingredientListCmd = &cobra.Command{
	Use:   "list",
	Short: "List ingredients, optionally filtered by substring",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := openEnv(cmd.Context())
		if err != nil {
			fatalSys("ingredient list", err)
		}
		defer env.Close()

		ingredients, err := env.catalog.SearchIngredients(cmd.Context(), resolveProfile(), ingredientQuery)
		if err != nil {
			fatalSys("ingredient list", err)
		}

		if flagJSON {
			printJSON(ingredients)
			return nil
		}
		for _, ing := range ingredients {
			if ing.StoreID != "" {
				fmt.Printf("%s  %s  (store %s)\n", ing.IngredientID, ing.Name, ing.StoreID)
			} else {
				fmt.Printf("%s  %s\n", ing.IngredientID, ing.Name)
			}
		}
		return nil
	},
}

var ingredientAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add an ingredient to the catalog",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := openEnv(cmd.Context())
		if err != nil {
			fatalSys("ingredient add", err)
		}
		defer env.Close()

		id, err := env.catalog.CreateIngredient(cmd.Context(), resolveProfile(), ingredientAddName, ingredientAddStore)
		if err != nil {
			fatalUser("ingredient add", err)
		}

		if flagJSON {
			printJSON(map[string]string{"ingredient_id": id})
			return nil
		}
		fmt.Println("Created ingredient:", id)
		return nil
	},
}

var ingredientUpdateCmd = &cobra.Command{
	Use:   "update <ingredient-id>",
	Short: "Rename or re-assign an ingredient",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := openEnv(cmd.Context())
		if err != nil {
			fatalSys("ingredient update", err)
		}
		defer env.Close()

		err = env.catalog.UpdateIngredient(cmd.Context(), resolveProfile(), args[0], ingredientUpdateName, ingredientUpdateStore)
		if err != nil {
			if errors.Is(err, types.ErrNotFound) || errors.Is(err, types.ErrDuplicateName) {
				fatalUser("ingredient update", err)
			}
			fatalSys("ingredient update", err)
		}
		fmt.Println("Updated ingredient:", args[0])
		return nil
	},
}

var ingredientRemoveCmd = &cobra.Command{
	Use:   "remove <ingredient-id>",
	Short: "Remove an ingredient, stripping it from dishes and the list",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := openEnv(cmd.Context())
		if err != nil {
			fatalSys("ingredient remove", err)
		}
		defer env.Close()

		if err := env.catalog.RemoveIngredient(cmd.Context(), resolveProfile(), args[0]); err != nil {
			if errors.Is(err, types.ErrNotFound) {
				fatalUser("ingredient remove", err)
			}
			fatalSys("ingredient remove", err)
		}
		fmt.Println("Removed ingredient:", args[0])
		return nil
	},
}

func init() {
	ingredientListCmd.Flags().StringVar(&ingredientQuery, "query", "", "case-insensitive substring filter")

	ingredientAddCmd.Flags().StringVar(&ingredientAddName, "name", "", "ingredient name (required)")
	ingredientAddCmd.Flags().StringVar(&ingredientAddStore, "store", "", "store ID the ingredient belongs to")
	ingredientAddCmd.MarkFlagRequired("name")

	ingredientUpdateCmd.Flags().StringVar(&ingredientUpdateName, "name", "", "ingredient name (required)")
	ingredientUpdateCmd.Flags().StringVar(&ingredientUpdateStore, "store", "", "store ID the ingredient belongs to")
	ingredientUpdateCmd.MarkFlagRequired("name")

	ingredientCmd.AddCommand(ingredientListCmd)
	ingredientCmd.AddCommand(ingredientAddCmd)
	ingredientCmd.AddCommand(ingredientUpdateCmd)
	ingredientCmd.AddCommand(ingredientRemoveCmd)
}
