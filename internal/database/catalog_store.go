package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"restaurant-billing/internal/catalog"
)

// CatalogStore keeps catalog documents in the menu_catalogs table. Documents
// are stored as text, byte for byte, so a malformed document reads back
// malformed.
type CatalogStore struct {
	db *DB
}

func NewCatalogStore(db *DB) *CatalogStore {
	return &CatalogStore{db: db}
}

func (s *CatalogStore) Read(ctx context.Context, name string) ([]byte, error) {
	var document string
	err := s.db.QueryRow(ctx, GetCatalogDocumentSQL, name).Scan(&document)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", catalog.ErrNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("query catalog %s: %w", name, err)
	}
	return []byte(document), nil
}

func (s *CatalogStore) Write(ctx context.Context, name string, document []byte) error {
	if _, err := s.db.Exec(ctx, UpsertCatalogDocumentSQL, name, string(document)); err != nil {
		return fmt.Errorf("upsert catalog %s: %w", name, err)
	}
	return nil
}
