package database

import (
	"database/sql"
	"fmt"
	"os"

	"cafe_backend/pkg/utils"

	_ "github.com/lib/pq" // PostgreSQL driver
)

// Connect opens and verifies a PostgreSQL connection pool. The caller owns
// the returned handle and is responsible for closing it.
func Connect(host, port, user, password, dbname, sslmode string) (*sql.DB, error) {
	connStr := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		host, port, user, password, dbname, sslmode)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	utils.LogInfo("successfully connected to the database", map[string]interface{}{
		"host": host, "dbname": dbname,
	})
	return db, nil
}

// ApplySchema reads and executes the db_schema.sql file. All statements use
// CREATE ... IF NOT EXISTS, so re-running on an existing database is safe.
func ApplySchema(db *sql.DB, schemaPath string) error {
	if schemaPath == "" {
		utils.LogInfo("no schema path provided, skipping schema application")
		return nil
	}
	content, err := os.ReadFile(schemaPath)
	if err != nil {
		return fmt.Errorf("could not read schema file %s: %w", schemaPath, err)
	}

	if _, err := db.Exec(string(content)); err != nil {
		return fmt.Errorf("could not execute schema script: %w", err)
	}
	utils.LogInfo("database schema applied", map[string]interface{}{"path": schemaPath})
	return nil
}
