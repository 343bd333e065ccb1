package bizstore

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"localspot/internal/bizstore/migrations"
	"localspot/internal/model"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// SQLiteStore is a SQLite-backed implementation of the BusinessStore
// collaborator. Timestamps are stored as unix seconds; coercion to and
// from time.Time happens here, at the persistence boundary.
type SQLiteStore struct {
	db   *sql.DB
	path string
}

// NewSQLiteStore opens (or creates) a listings database at path and brings
// its schema up to date. path can be ":memory:" for an in-memory database.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite disables foreign keys by default for backward compatibility.
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	if err := migrations.MigrateUp(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrating listings schema: %w", err)
	}

	return &SQLiteStore{db: db, path: path}, nil
}

// List returns all listings ordered by created_at descending.
func (s *SQLiteStore) List(ctx context.Context) ([]model.Business, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, category, latitude, longitude, whatsapp, phone,
		       description, image_url, status, created_at
		FROM businesses
		ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("listing businesses: %w", err)
	}
	defer rows.Close()

	var out []model.Business
	for rows.Next() {
		var b model.Business
		var category, status string
		var createdAt int64
		if err := rows.Scan(&b.ID, &b.Name, &category, &b.Location.Latitude, &b.Location.Longitude,
			&b.WhatsApp, &b.Phone, &b.Description, &b.ImageURL, &status, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning business row: %w", err)
		}
		b.Category = model.Category(category)
		b.Status = model.Status(status)
		b.CreatedAt = time.Unix(createdAt, 0).UTC()
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading business rows: %w", err)
	}
	return out, nil
}

// Insert persists the record under a fresh server-assigned id and returns it.
func (s *SQLiteStore) Insert(ctx context.Context, record model.Business, ownerID string) (string, error) {
	id := uuid.New().String()
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO businesses
			(id, name, category, latitude, longitude, whatsapp, phone,
			 description, image_url, status, owner_id, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, record.Name, string(record.Category),
		record.Location.Latitude, record.Location.Longitude,
		record.WhatsApp, record.Phone, record.Description, record.ImageURL,
		string(record.Status), ownerID, record.CreatedAt.Unix())
	if err != nil {
		return "", fmt.Errorf("inserting business: %w", err)
	}
	return id, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
