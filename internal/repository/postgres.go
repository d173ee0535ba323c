package repository

import (
	"context"
	"fmt"
	"time"

	"realty/internal/dataset"
	"realty/internal/model"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// PostgresRepository reads listings used as the primary analytics dataset
type PostgresRepository struct {
	db    *sqlx.DB
	table string
}

// connect is swapped in tests
var connect = sqlx.Connect

// NewPostgresRepository creates a new PostgreSQL repository
func NewPostgresRepository(dsn string, maxConn, maxIdleConn int, table string) (*PostgresRepository, error) {
	db, err := connect("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db.SetMaxOpenConns(maxConn)
	db.SetMaxIdleConns(maxIdleConn)
	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetConnMaxIdleTime(2 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return NewPostgresRepositoryWithDB(db, table), nil
}

// NewPostgresRepositoryWithDB wraps an existing connection
func NewPostgresRepositoryWithDB(db *sqlx.DB, table string) *PostgresRepository {
	if table == "" {
		table = "listing_info"
	}
	return &PostgresRepository{db: db, table: table}
}

// Close closes the database connection
func (r *PostgresRepository) Close() error {
	return r.db.Close()
}

// listingsQuery selects the analytics columns. Only completed listings with
// a price are returned.
func (r *PostgresRepository) listingsQuery() string {
	return fmt.Sprintf(`
		SELECT
			id, price, price_per_sqft, bedrooms, bathrooms,
			area_sqft, unit_type, location, latitude, longitude
		FROM %s
		WHERE is_completed = true AND price IS NOT NULL
		ORDER BY id
	`, pq.QuoteIdentifier(r.table))
}

// ListListings fetches every analytics-ready listing
func (r *PostgresRepository) ListListings(ctx context.Context) ([]model.Listing, error) {
	var listings []model.Listing
	if err := r.db.SelectContext(ctx, &listings, r.listingsQuery()); err != nil {
		return nil, fmt.Errorf("failed to fetch listings: %w", err)
	}
	return listings, nil
}

// LoadPrimary returns the listings as a table in model.ListingColumns order
func (r *PostgresRepository) LoadPrimary(ctx context.Context) (*dataset.Frame, error) {
	listings, err := r.ListListings(ctx)
	if err != nil {
		return nil, err
	}
	return ListingsFrame(listings), nil
}

// ListingsFrame converts listings to a table
func ListingsFrame(listings []model.Listing) *dataset.Frame {
	rows := make([][]string, 0, len(listings))
	for _, l := range listings {
		rows = append(rows, l.Row())
	}
	return dataset.NewFrame(model.ListingColumns, rows)
}
