package database

// Catalog queries
const (
	GetCatalogDocumentSQL = `
		SELECT document FROM menu_catalogs WHERE name = $1`

	UpsertCatalogDocumentSQL = `
		INSERT INTO menu_catalogs (name, document)
		VALUES ($1, $2)
		ON CONFLICT (name) DO UPDATE SET
			document = EXCLUDED.document,
			updated_at = NOW()`
)

// Migration bookkeeping
const (
	CreateMigrationsTableSQL = `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			id SERIAL PRIMARY KEY,
			migration_name VARCHAR(255) NOT NULL UNIQUE,
			applied_at TIMESTAMPTZ DEFAULT NOW()
		)`

	GetAppliedMigrationsSQL = `SELECT migration_name FROM schema_migrations`

	RecordMigrationSQL = `INSERT INTO schema_migrations (migration_name) VALUES ($1)`
)
