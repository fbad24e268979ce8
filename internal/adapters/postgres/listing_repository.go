package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"catalog-service/internal/contextkeys"
	"catalog-service/internal/core/domain"
	"catalog-service/internal/core/port"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// querier - часть pgxpool.Pool, которую использует репозиторий
type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// ListingRepository читает и пишет таблицу properties
type ListingRepository struct {
	pool     querier
	statuses []domain.ListingStatus
}

// NewListingRepository: statuses ограничивает выборку, пустой список - все статусы
func NewListingRepository(pool querier, statuses ...domain.ListingStatus) (*ListingRepository, error) {
	if pool == nil {
		return nil, errors.New("postgres pool cannot be nil")
	}
	return &ListingRepository{pool: pool, statuses: statuses}, nil
}

// listingRow повторяет nullable-колонки таблицы
type listingRow struct {
	ID           string
	Title        string
	Description  *string
	Price        float64
	Location     string
	Type         string
	PropertyType *string
	Beds         *int32
	Baths        *float64
	Sqft         *int32
	Image        *string
	Status       string
	OwnerID      *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (r *listingRow) scanTargets() []any {
	return []any{
		&r.ID, &r.Title, &r.Description, &r.Price, &r.Location, &r.Type, &r.PropertyType,
		&r.Beds, &r.Baths, &r.Sqft, &r.Image, &r.Status, &r.OwnerID, &r.CreatedAt, &r.UpdatedAt,
	}
}

func (r listingRow) toDomain() (domain.Listing, error) {
	return domain.NewListing(domain.Listing{
		ID:           r.ID,
		Title:        r.Title,
		Description:  deref(r.Description),
		Price:        r.Price,
		Location:     r.Location,
		ListingType:  domain.ListingType(r.Type),
		PropertyType: domain.PropertyType(deref(r.PropertyType)),
		Beds:         int(deref(r.Beds)),
		Baths:        deref(r.Baths),
		Sqft:         int(deref(r.Sqft)),
		ImageURL:     deref(r.Image),
		Status:       domain.ListingStatus(r.Status),
		OwnerID:      deref(r.OwnerID),
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	})
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}

func nullable[T comparable](v T) *T {
	var zero T
	if v == zero {
		return nil
	}
	return &v
}

func (r *ListingRepository) All(ctx context.Context) ([]domain.Listing, error) {
	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component": "ListingRepository",
		"method":    "All",
	})

	query, args := selectListingsQuery(r.statuses, "")
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		logger.Error("Failed to query listings", err, nil)
		return nil, fmt.Errorf("failed to query listings: %w", err)
	}
	defer rows.Close()

	var (
		listings []domain.Listing
		skipped  int
	)
	for rows.Next() {
		var row listingRow
		if err := rows.Scan(row.scanTargets()...); err != nil {
			return nil, fmt.Errorf("failed to scan listing row: %w", err)
		}
		l, err := row.toDomain()
		if err != nil {
			skipped++
			logger.Warn("Skipping invalid listing row", port.Fields{"listing_id": row.ID, "error": err.Error()})
			continue
		}
		listings = append(listings, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating listing rows: %w", err)
	}

	logger.Debug("Listings loaded", port.Fields{"count": len(listings), "skipped": skipped})
	return listings, nil
}

func (r *ListingRepository) GetByID(ctx context.Context, id string) (*domain.Listing, error) {
	query, args := selectListingsQuery(r.statuses, id)

	var row listingRow
	err := r.pool.QueryRow(ctx, query, args...).Scan(row.scanTargets()...)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("listing %q: %w", id, domain.ErrListingNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get listing %q: %w", id, err)
	}

	l, err := row.toDomain()
	if err != nil {
		return nil, fmt.Errorf("listing %q is invalid: %w", id, err)
	}
	return &l, nil
}

// upsertListingQuery не перезаписывает более новую строку и не
// вставляет объявление, удаленное позже его updated_at
const upsertListingQuery = `
	INSERT INTO properties (` + listingColumns + `)
	SELECT $1::text, $2::text, $3::text, $4::double precision, $5::text, $6::text, $7::text,
		$8::integer, $9::double precision, $10::integer, $11::text, $12::text, $13::text,
		$14::timestamptz, $15::timestamptz
	WHERE NOT EXISTS (
		SELECT 1 FROM deleted_properties d WHERE d.id = $1 AND d.deleted_at >= $15::timestamptz
	)
	ON CONFLICT (id) DO UPDATE SET
		title = EXCLUDED.title,
		description = EXCLUDED.description,
		price = EXCLUDED.price,
		location = EXCLUDED.location,
		type = EXCLUDED.type,
		property_type = EXCLUDED.property_type,
		beds = EXCLUDED.beds,
		baths = EXCLUDED.baths,
		sqft = EXCLUDED.sqft,
		image = EXCLUDED.image,
		status = EXCLUDED.status,
		owner_id = EXCLUDED.owner_id,
		updated_at = EXCLUDED.updated_at
	WHERE properties.updated_at <= EXCLUDED.updated_at`

// deleteListingQuery удаляет строку, если она не новее удаления, и
// запоминает надгробие
const deleteListingQuery = `
	WITH removed AS (
		DELETE FROM properties WHERE id = $1 AND updated_at <= $2
	)
	INSERT INTO deleted_properties (id, deleted_at) VALUES ($1, $2)
	ON CONFLICT (id) DO UPDATE SET
		deleted_at = GREATEST(deleted_properties.deleted_at, EXCLUDED.deleted_at)`

// Upsert нужен, когда Postgres - основное хранилище и события
// должны переживать перезапуск сервиса
func (r *ListingRepository) Upsert(ctx context.Context, l domain.Listing) error {
	updated := l.UpdatedAt
	if updated.IsZero() {
		updated = time.Now().UTC()
	}
	created := l.CreatedAt
	if created.IsZero() {
		created = updated
	}

	_, err := r.pool.Exec(ctx, upsertListingQuery,
		l.ID, l.Title, nullable(l.Description), l.Price, l.Location, string(l.ListingType),
		string(l.PropertyType), int32(l.Beds), l.Baths, int32(l.Sqft), nullable(l.ImageURL),
		string(l.Status), nullable(l.OwnerID), created, updated,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert listing %q: %w", l.ID, err)
	}
	return nil
}

func (r *ListingRepository) Delete(ctx context.Context, id string, deletedAt time.Time) error {
	if _, err := r.pool.Exec(ctx, deleteListingQuery, id, deletedAt.UTC()); err != nil {
		return fmt.Errorf("failed to delete listing %q: %w", id, err)
	}
	return nil
}
