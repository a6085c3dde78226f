// Store commands for the larder CLI.
package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/larder/pkg/types"
)

var (
	storeAddName    string
	storeAddColor   string
	storeSetColor   string
	storeOrderValue string
)

var storeCmd = &cobra.Command{
	Use:   "store",
	Short: "Manage stores",
}

var storeListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stores in display order",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := openEnv(cmd.Context())
		if err != nil {
			fatalSys("store list", err)
		}
		defer env.Close()

		stores, err := env.catalog.ListStores(cmd.Context(), resolveProfile())
		if err != nil {
			fatalSys("store list", err)
		}

		if flagJSON {
			printJSON(stores)
			return nil
		}
		for _, s := range stores {
			fmt.Printf("%s  %s\n", s.StoreID, s.Name)
		}
		return nil
	},
}

var storeAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a store at the end of the display order",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := openEnv(cmd.Context())
		if err != nil {
			fatalSys("store add", err)
		}
		defer env.Close()

		id, err := env.catalog.CreateStore(cmd.Context(), resolveProfile(), storeAddName, storeAddColor, "")
		if err != nil {
			fatalUser("store add", err)
		}

		if flagJSON {
			printJSON(map[string]string{"store_id": id})
			return nil
		}
		fmt.Println("Created store:", id)
		return nil
	},
}

var storeColorCmd = &cobra.Command{
	Use:   "color <store-id>",
	Short: "Set a store's display color",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := openEnv(cmd.Context())
		if err != nil {
			fatalSys("store color", err)
		}
		defer env.Close()

		if err := env.catalog.UpdateStoreColor(cmd.Context(), args[0], storeSetColor); err != nil {
			if errors.Is(err, types.ErrNotFound) {
				fatalUser("store color", err)
			}
			fatalSys("store color", err)
		}
		fmt.Println("Updated store:", args[0])
		return nil
	},
}

var storeRemoveCmd = &cobra.Command{
	Use:   "remove <store-id>",
	Short: "Remove a store, detaching its ingredients",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := openEnv(cmd.Context())
		if err != nil {
			fatalSys("store remove", err)
		}
		defer env.Close()

		if err := env.catalog.RemoveStore(cmd.Context(), resolveProfile(), args[0]); err != nil {
			if errors.Is(err, types.ErrNotFound) {
				fatalUser("store remove", err)
			}
			fatalSys("store remove", err)
		}
		fmt.Println("Removed store:", args[0])
		return nil
	},
}

var storeReorderCmd = &cobra.Command{
	Use:   "reorder",
	Short: "Reorder stores by a comma-separated ID list",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ids := strings.Split(storeOrderValue, ",")
		for i := range ids {
			ids[i] = strings.TrimSpace(ids[i])
		}

		env, err := openEnv(cmd.Context())
		if err != nil {
			fatalSys("store reorder", err)
		}
		defer env.Close()

		if err := env.catalog.ReorderStores(cmd.Context(), resolveProfile(), ids); err != nil {
			fatalUser("store reorder", err)
		}
		fmt.Println("Reordered stores")
		return nil
	},
}

func init() {
	storeAddCmd.Flags().StringVar(&storeAddName, "name", "", "store name (required)")
	storeAddCmd.Flags().StringVar(&storeAddColor, "color", "", "display color, e.g. #ff8800")
	storeAddCmd.MarkFlagRequired("name")

	storeColorCmd.Flags().StringVar(&storeSetColor, "color", "", "display color (required)")
	storeColorCmd.MarkFlagRequired("color")

	storeReorderCmd.Flags().StringVar(&storeOrderValue, "order", "", "comma-separated store IDs (required)")
	storeReorderCmd.MarkFlagRequired("order")

	storeCmd.AddCommand(storeListCmd)
	storeCmd.AddCommand(storeAddCmd)
	storeCmd.AddCommand(storeColorCmd)
	storeCmd.AddCommand(storeRemoveCmd)
	storeCmd.AddCommand(storeReorderCmd)
}
