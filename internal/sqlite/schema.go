package sqlite

// Schema DDL for all collections. Every table carries a profile index; the
// shopping list table additionally enforces the one-document-per-profile
// invariant with a unique index.
const schemaSQL = `
CREATE TABLE IF NOT EXISTS stores (
    store_id TEXT PRIMARY KEY,
    profile_id TEXT NOT NULL,
    name TEXT NOT NULL,
    sort_order INTEGER NOT NULL,
    color TEXT,
    image_id TEXT,
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_stores_profile ON stores(profile_id);

CREATE TABLE IF NOT EXISTS ingredients (
    ingredient_id TEXT PRIMARY KEY,
    profile_id TEXT NOT NULL,
    name TEXT NOT NULL,
    store_id TEXT,
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_ingredients_profile ON ingredients(profile_id);

CREATE TABLE IF NOT EXISTS dishes (
    dish_id TEXT PRIMARY KEY,
    profile_id TEXT NOT NULL,
    name TEXT NOT NULL,
    items TEXT NOT NULL,
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_dishes_profile ON dishes(profile_id);

CREATE TABLE IF NOT EXISTS shopping_lists (
    list_id TEXT PRIMARY KEY,
    profile_id TEXT NOT NULL,
    selected_dishes TEXT NOT NULL,
    manual_ingredients TEXT NOT NULL,
    excluded_ingredient_ids TEXT NOT NULL,
    checked_ingredient_ids TEXT NOT NULL,
    misc_items TEXT NOT NULL,
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_shopping_lists_profile ON shopping_lists(profile_id);
`
