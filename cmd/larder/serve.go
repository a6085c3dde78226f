// Serve command: runs the HTTP API.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mesh-intelligence/larder/internal/api"
	"github.com/mesh-intelligence/larder/internal/blob"
	"github.com/mesh-intelligence/larder/internal/service"
	"github.com/mesh-intelligence/larder/internal/sqlite"
	"github.com/mesh-intelligence/larder/pkg/types"
)

var (
	serveAddr string
	serveEnv  string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the larder HTTP API",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := zap.Must(zap.NewProduction()).Sugar()
		defer logger.Sync()

		dataDir, err := resolveDataDir()
		if err != nil {
			return fmt.Errorf("resolve data dir: %w", err)
		}

		storage, err := sqlite.Open(types.Config{
			Backend: types.BackendSQLite,
			DataDir: dataDir,
		})
		if err != nil {
			return fmt.Errorf("open storage: %w", err)
		}
		defer storage.Close()

		logger.Infow("storage opened", "data_dir", dataDir)

		blobs, err := blob.Open(cmd.Context())
		if err != nil {
			return fmt.Errorf("open blob store: %w", err)
		}
		logger.Infow("blob store opened", "driver", blobs.Driver())

		stores := sqlite.NewStoreRepository(storage)
		ingredients := sqlite.NewIngredientRepository(storage)
		dishes := sqlite.NewDishRepository(storage)
		lists := sqlite.NewShoppingListRepository(storage)

		catalog := service.NewCatalogService(stores, ingredients, dishes, lists, blobs, logger)
		dishService := service.NewDishService(dishes, ingredients, logger)
		shopping := service.NewShoppingService(lists, dishes, ingredients, stores, logger)

		server := api.NewServer(
			api.Config{Addr: serveAddr, Env: serveEnv},
			logger,
			catalog,
			dishService,
			shopping,
			blobs,
			storage,
		)

		return server.Run(cmd.Context())
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", ":8080", "listen address")
	serveCmd.Flags().StringVar(&serveEnv, "env", "development", "environment name for logs")
}
