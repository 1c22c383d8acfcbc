// internal/db/initdb.go
package db

import (
	"database/sql"
	"fmt"
	"log"
	"net/url"
	"strings"

	_ "github.com/lib/pq"
)

// CreateDatabaseIfNotExists creates the target database when it is missing,
// connecting through the default 'postgres' database to do so.
func CreateDatabaseIfNotExists(connString string) error {
	u, err := url.Parse(connString)
	if err != nil {
		return fmt.Errorf("failed to parse connection string: %w", err)
	}
	dbName := strings.TrimPrefix(u.Path, "/")
	if dbName == "" {
		return fmt.Errorf("could not find database name in connection string")
	}

	rootURL := *u
	rootURL.Path = "/postgres"

	db, err := sql.Open("postgres", rootURL.String())
	if err != nil {
		return fmt.Errorf("failed to connect to postgres: %w", err)
	}
	defer db.Close()

	var exists bool
	err = db.QueryRow("SELECT 1 FROM pg_database WHERE datname = $1", dbName).Scan(&exists)
	if err != nil && err != sql.ErrNoRows {
		return fmt.Errorf("failed to check if database exists: %w", err)
	}

	if !exists {
		log.Printf("Creating database: %s", dbName)
		if _, err := db.Exec("CREATE DATABASE " + dbName); err != nil {
			return fmt.Errorf("failed to create database: %w", err)
		}
		log.Printf("Database %s created successfully", dbName)
	}

	return nil
}
