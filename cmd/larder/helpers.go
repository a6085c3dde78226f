// Shared helpers for larder CLI commands.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/mesh-intelligence/larder/internal/blob"
	"github.com/mesh-intelligence/larder/internal/service"
	"github.com/mesh-intelligence/larder/internal/sqlite"
	"github.com/mesh-intelligence/larder/pkg/types"
)

// cliEnv bundles the opened storage and the services built on it. The
// caller must defer env.Close().
type cliEnv struct {
	storage  *sqlite.Storage
	catalog  *service.CatalogService
	dishes   *service.DishService
	shopping *service.ShoppingService
}

// openEnv resolves the data directory, opens the SQLite storage and wires
// the services. CLI commands run with a no-op logger; serve mode uses a
// real one.
func openEnv(ctx context.Context) (*cliEnv, error) {
	dataDir, err := resolveDataDir()
	if err != nil {
		return nil, fmt.Errorf("resolve data dir: %w", err)
	}

	storage, err := sqlite.Open(types.Config{
		Backend: types.BackendSQLite,
		DataDir: dataDir,
	})
	if err != nil {
		return nil, fmt.Errorf("open storage: %w", err)
	}

	blobs, err := blob.Open(ctx)
	if err != nil {
		storage.Close()
		return nil, fmt.Errorf("open blob store: %w", err)
	}

	logger := zap.NewNop().Sugar()
	stores := sqlite.NewStoreRepository(storage)
	ingredients := sqlite.NewIngredientRepository(storage)
	dishes := sqlite.NewDishRepository(storage)
	lists := sqlite.NewShoppingListRepository(storage)

	return &cliEnv{
		storage:  storage,
		catalog:  service.NewCatalogService(stores, ingredients, dishes, lists, blobs, logger),
		dishes:   service.NewDishService(dishes, ingredients, logger),
		shopping: service.NewShoppingService(lists, dishes, ingredients, stores, logger),
	}, nil
}

// Close releases the storage handle.
func (e *cliEnv) Close() {
	if e.storage != nil {
		e.storage.Close()
	}
}

// printJSON writes v as indented JSON to stdout.
func printJSON(v any) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Fprintln(os.Stderr, "marshal JSON:", err)
		os.Exit(exitSysError)
	}
	fmt.Println(string(out))
}

// fatalSys prints a prefixed error and exits with the system error code.
func fatalSys(prefix string, err error) {
	fmt.Fprintf(os.Stderr, "%s: %s\n", prefix, err)
	os.Exit(exitSysError)
}

// fatalUser prints a prefixed error and exits with the user error code.
func fatalUser(prefix string, err error) {
	fmt.Fprintf(os.Stderr, "%s: %s\n", prefix, err)
	os.Exit(exitUserError)
}
