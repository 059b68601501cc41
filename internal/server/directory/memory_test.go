package directory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/qrcontact/internal/common"
	"github.com/dmitrijs2005/qrcontact/internal/server/models"
)

func profileAt(id, name, email string, created time.Time) *models.Profile {
	return &models.Profile{
		ID: id, Token: "tok_" + id, Name: name, Email: email, CreatedAt: created,
	}
}

func TestMemoryStore_PutGetRoundTrip(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	p := &models.Profile{
		ID:        "user_ab12cd34",
		Token:     "AbCdEfGhIjKlMnOp",
		Name:      "John Doe",
		Email:     "john.doe@example.com",
		Phone:     "+1 (555) 123-4567",
		Company:   "Tech Solutions Inc.",
		Title:     "Senior Software Engineer",
		Website:   "https://johndoe.dev",
		CreatedAt: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		ScanCount: 12,
	}

	require.NoError(t, s.Put(ctx, p))
	got, err := s.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, p, got)

	// The stored copy must be isolated from later caller mutations.
	p.Name = "changed"
	got2, err := s.Get(ctx, "user_ab12cd34")
	require.NoError(t, err)
	assert.Equal(t, "John Doe", got2.Name)
}

func TestMemoryStore_GetUnknown(t *testing.T) {
	s := NewMemoryStore()
	_, err := s.Get(context.Background(), "user_missing")
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestMemoryStore_IncrementScanUnknown(t *testing.T) {
	s := NewMemoryStore()
	err := s.IncrementScan(context.Background(), "user_missing")
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestMemoryStore_Search(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	require.NoError(t, s.Put(ctx, profileAt("user_aaaa1111", "John Doe", "john@example.com", base)))
	require.NoError(t, s.Put(ctx, profileAt("user_bbbb2222", "Jane Smith", "jane@example.com", base.Add(time.Minute))))

	got, err := s.Search(ctx, "doe")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "John Doe", got[0].Name)

	// OR semantics: match by id and by email too.
	got, err = s.Search(ctx, "BBBB")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Jane Smith", got[0].Name)

	got, err = s.Search(ctx, "example.com")
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestMemoryStore_SearchEmptyTermIsError(t *testing.T) {
	s := NewMemoryStore()
	_, err := s.Search(context.Background(), "   ")
	assert.ErrorIs(t, err, common.ErrorValidation)
}

func TestMemoryStore_ListAllOrdersByCreatedAtDesc(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	t1 := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	t2 := t1.Add(time.Hour)
	t3 := t2.Add(time.Hour)

	require.NoError(t, s.Put(ctx, profileAt("user_t2", "B", "b@x.y", t2)))
	require.NoError(t, s.Put(ctx, profileAt("user_t1", "A", "a@x.y", t1)))
	require.NoError(t, s.Put(ctx, profileAt("user_t3", "C", "c@x.y", t3)))

	got, err := s.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "user_t3", got[0].ID)
	assert.Equal(t, "user_t2", got[1].ID)
	assert.Equal(t, "user_t1", got[2].ID)
}

func TestMemoryStore_StatsSnapshot(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	require.NoError(t, s.Put(ctx, profileAt("user_a", "A", "a@x.y", base)))
	require.NoError(t, s.Put(ctx, profileAt("user_b", "B", "b@x.y", base)))
	require.NoError(t, s.IncrementScan(ctx, "user_a"))
	require.NoError(t, s.IncrementScan(ctx, "user_a"))
	require.NoError(t, s.IncrementDisclosuresSent(ctx))

	stats, err := s.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.TotalUsers)
	assert.Equal(t, int64(2), stats.TotalScans)
	assert.Equal(t, int64(1), stats.TotalDisclosuresSent)

	scanned, err := s.Get(ctx, "user_a")
	require.NoError(t, err)
	assert.Equal(t, int64(2), scanned.ScanCount, "per-profile count stays consistent with total_scans")
}
