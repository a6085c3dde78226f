package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/mesh-intelligence/larder/pkg/types"
)

// StoreRepo implements repo.StoreRepository.
type StoreRepo struct {
	storage *Storage
}

// NewStoreRepository returns a store repository backed by the storage.
func NewStoreRepository(storage *Storage) *StoreRepo {
	return &StoreRepo{storage: storage}
}

const storeColumns = "store_id, profile_id, name, sort_order, color, image_id, created_at, updated_at"

// List returns the profile's stores sorted by sort order; ties break by
// insertion order (creation timestamp, then ID).
func (r *StoreRepo) List(ctx context.Context, profileID string) ([]*types.Store, error) {
	r.storage.mu.RLock()
	defer r.storage.mu.RUnlock()

	rows, err := r.storage.db.QueryContext(ctx,
		"SELECT "+storeColumns+" FROM stores WHERE profile_id = ? ORDER BY sort_order, created_at, store_id",
		profileID)
	if err != nil {
		return nil, fmt.Errorf("listing stores: %w", err)
	}
	defer rows.Close()

	var stores []*types.Store
	for rows.Next() {
		store, err := scanStore(rows)
		if err != nil {
			return nil, err
		}
		stores = append(stores, store)
	}
	return stores, rows.Err()
}

// Get retrieves a store by ID. Returns types.ErrNotFound when absent.
func (r *StoreRepo) Get(ctx context.Context, id string) (*types.Store, error) {
	if id == "" {
		return nil, types.ErrInvalidID
	}
	r.storage.mu.RLock()
	defer r.storage.mu.RUnlock()

	row := r.storage.db.QueryRowContext(ctx,
		"SELECT "+storeColumns+" FROM stores WHERE store_id = ?", id)
	return scanStore(row)
}

// Create inserts a new store, generating its ID and timestamps.
func (r *StoreRepo) Create(ctx context.Context, store *types.Store) (string, error) {
	r.storage.mu.Lock()
	defer r.storage.mu.Unlock()

	now := time.Now()
	store.StoreID = newUUID()
	store.CreatedAt = now
	store.UpdatedAt = now

	_, err := r.storage.db.ExecContext(ctx, `
		INSERT INTO stores (store_id, profile_id, name, sort_order, color, image_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		store.StoreID, store.ProfileID, store.Name, store.SortOrder,
		nullable(store.Color), nullable(store.ImageID),
		formatTime(store.CreatedAt), formatTime(store.UpdatedAt))
	if err != nil {
		return "", fmt.Errorf("inserting store: %w", err)
	}
	return store.StoreID, nil
}

// Update writes the full record back. Returns types.ErrNotFound when the
// store does not exist.
func (r *StoreRepo) Update(ctx context.Context, store *types.Store) error {
	r.storage.mu.Lock()
	defer r.storage.mu.Unlock()

	store.UpdatedAt = time.Now()
	res, err := r.storage.db.ExecContext(ctx, `
		UPDATE stores SET name = ?, sort_order = ?, color = ?, image_id = ?, updated_at = ?
		WHERE store_id = ?`,
		store.Name, store.SortOrder, nullable(store.Color), nullable(store.ImageID),
		formatTime(store.UpdatedAt), store.StoreID)
	if err != nil {
		return fmt.Errorf("updating store: %w", err)
	}
	return requireRow(res)
}

// Delete removes the store record. Returns types.ErrNotFound when absent.
func (r *StoreRepo) Delete(ctx context.Context, id string) error {
	if id == "" {
		return types.ErrInvalidID
	}
	r.storage.mu.Lock()
	defer r.storage.mu.Unlock()

	res, err := r.storage.db.ExecContext(ctx, "DELETE FROM stores WHERE store_id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting store: %w", err)
	}
	return requireRow(res)
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanStore(row rowScanner) (*types.Store, error) {
	var s types.Store
	var color, imageID sql.NullString
	var createdAt, updatedAt string
	err := row.Scan(&s.StoreID, &s.ProfileID, &s.Name, &s.SortOrder,
		&color, &imageID, &createdAt, &updatedAt)
	if err == sql.ErrNoRows {
		return nil, types.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scanning store: %w", err)
	}
	s.Color = color.String
	s.ImageID = imageID.String
	if s.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if s.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}
	return &s, nil
}

// requireRow maps a zero-row update or delete to types.ErrNotFound.
func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return types.ErrNotFound
	}
	return nil
}
