// Package seed populates the films table from a JSON snapshot.  It is run
// offline by cmd/seed and never by the HTTP server.
package seed

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/jmoiron/sqlx"

	"github.com/iliyamo/film-catalog/internal/database"
	"github.com/iliyamo/film-catalog/internal/model"
	"github.com/iliyamo/film-catalog/internal/repository"
)

// LoadFile reads a JSON array of film objects.  Keys follow the column
// names; keys that are absent decode to nil and are stored as NULL.  An
// "id" key, if present, is ignored at insert time.
func LoadFile(path string) ([]model.Film, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	return Decode(b)
}

// Decode parses a JSON array of film objects.
func Decode(b []byte) ([]model.Film, error) {
	var films []model.Film
	if err := json.Unmarshal(b, &films); err != nil {
		return nil, fmt.Errorf("parse seed file: %w", err)
	}
	return films, nil
}

// Run creates the films table if needed and appends one row per film in
// order.  Nothing is de-duplicated: running it twice doubles the rows.
func Run(ctx context.Context, db *sqlx.DB, films []model.Film) (int, error) {
	if err := database.EnsureSchema(ctx, db); err != nil {
		return 0, err
	}
	return repository.NewFilmRepo(db).InsertBatch(ctx, films)
}
