package postgres

import (
	"context"
	"testing"
	"time"

	"catalog-service/internal/core/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingQuerier запоминает выполненные команды
type recordingQuerier struct {
	sql  []string
	args [][]any
}

func (q *recordingQuerier) Query(context.Context, string, ...any) (pgx.Rows, error) {
	return nil, pgx.ErrNoRows
}

func (q *recordingQuerier) QueryRow(context.Context, string, ...any) pgx.Row {
	return nil
}

func (q *recordingQuerier) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	q.sql = append(q.sql, sql)
	q.args = append(q.args, args)
	return pgconn.NewCommandTag("INSERT 0 1"), nil
}

func TestSelectListingsQuery(t *testing.T) {
	query, args := selectListingsQuery(nil, "")
	assert.NotContains(t, query, "WHERE")
	assert.Contains(t, query, "ORDER BY created_at DESC, id")
	assert.Empty(t, args)

	query, args = selectListingsQuery([]domain.ListingStatus{domain.ListingStatusActive, domain.ListingStatusUnderContract}, "p1")
	assert.Contains(t, query, "WHERE status = ANY($1) AND id = $2")
	require.Len(t, args, 2)
	assert.Equal(t, []string{"active", "under_contract"}, args[0])
	assert.Equal(t, "p1", args[1])
}

func TestListingRowToDomain(t *testing.T) {
	created := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	row := listingRow{
		ID:           "p1",
		Title:        "Cozy House",
		Description:  nullable("Quiet street"),
		Price:        350000,
		Location:     "789 Comfort Street, Austin, TX",
		Type:         "sale",
		PropertyType: nullable("House"),
		Beds:         nullable(int32(2)),
		Baths:        nullable(2.0),
		Sqft:         nullable(int32(1000)),
		Status:       "active",
		CreatedAt:    created,
	}

	l, err := row.toDomain()
	require.NoError(t, err)
	assert.Equal(t, "Quiet street", l.Description)
	assert.Equal(t, domain.PropertyTypeHouse, l.PropertyType)
	assert.Equal(t, 2, l.Beds)
	assert.Equal(t, 1000, l.Sqft)
	assert.Empty(t, l.ImageURL)
	assert.Equal(t, created, l.CreatedAt)
}

func TestListingRowWithoutSqftIsInvalid(t *testing.T) {
	row := listingRow{ID: "p1", Title: "Lot", Price: 1, Type: "sale", PropertyType: nullable("land"), Status: "active"}

	_, err := row.toDomain()
	assert.Error(t, err)
}

func TestNullable(t *testing.T) {
	assert.Nil(t, nullable(""))
	assert.Equal(t, "x", *nullable("x"))
}

func TestNewListingRepositoryRequiresPool(t *testing.T) {
	_, err := NewListingRepository(nil)
	assert.Error(t, err)
}

func TestUpsertKeepsNewerRows(t *testing.T) {
	q := &recordingQuerier{}
	repo, err := NewListingRepository(q)
	require.NoError(t, err)

	updated := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Upsert(context.Background(), domain.Listing{
		ID: "p1", Title: "Cozy House", Price: 350000, Location: "Austin, TX",
		ListingType: domain.ListingTypeSale, Sqft: 1000, Status: domain.ListingStatusActive, UpdatedAt: updated,
	}))

	require.Len(t, q.sql, 1)
	assert.Contains(t, q.sql[0], "WHERE properties.updated_at <= EXCLUDED.updated_at")
	assert.Contains(t, q.sql[0], "FROM deleted_properties d WHERE d.id = $1 AND d.deleted_at >= $15")
	require.Len(t, q.args[0], 15)
	assert.Equal(t, "p1", q.args[0][0])
	assert.Equal(t, updated, q.args[0][13], "created_at defaults to updated_at")
	assert.Equal(t, updated, q.args[0][14])
}

func TestDeleteRecordsTombstone(t *testing.T) {
	q := &recordingQuerier{}
	repo, err := NewListingRepository(q)
	require.NoError(t, err)

	deletedAt := time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Delete(context.Background(), "p1", deletedAt))

	require.Len(t, q.sql, 1)
	assert.Contains(t, q.sql[0], "DELETE FROM properties WHERE id = $1 AND updated_at <= $2")
	assert.Contains(t, q.sql[0], "INSERT INTO deleted_properties")
	assert.Equal(t, []any{"p1", deletedAt}, q.args[0])
}
