package feed

import (
	"testing"
	"time"

	"statusworld/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

func status(id uint, featured, hidden bool, age time.Duration) models.Status {
	return models.Status{
		ID:        id,
		Featured:  featured,
		Hidden:    hidden,
		CreatedAt: now.Add(-age),
	}
}

func ids(statuses []models.Status) []uint {
	out := make([]uint, len(statuses))
	for i, s := range statuses {
		out[i] = s.ID
	}
	return out
}

func TestExpired(t *testing.T) {
	tests := []struct {
		name    string
		age     time.Duration
		expired bool
	}{
		{"fresh", time.Hour, false},
		{"just inside the window", 47*time.Hour + 59*time.Minute, false},
		{"exactly at the window", 48 * time.Hour, false},
		{"one second past", 48*time.Hour + time.Second, true},
		{"days old", 5 * 24 * time.Hour, true},
	}

	var p Policy
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expired, p.Expired(now.Add(-tt.age), now))
		})
	}
}

func TestExpired_CustomRetention(t *testing.T) {
	p := Policy{Retention: time.Hour}
	assert.False(t, p.Expired(now.Add(-59*time.Minute), now))
	assert.True(t, p.Expired(now.Add(-61*time.Minute), now))

	// Zero value falls back to the default window.
	var def Policy
	assert.False(t, def.Expired(now.Add(-24*time.Hour), now))
}

func TestVisible_SingleStatus(t *testing.T) {
	tests := []struct {
		name    string
		s       models.Status
		visible bool
	}{
		{"live and shown", status(1, false, false, time.Hour), true},
		{"hidden", status(2, false, true, time.Hour), false},
		{"expired", status(3, false, false, 49 * time.Hour), false},
		{"hidden and expired", status(4, false, true, 49 * time.Hour), false},
		{"featured does not rescue hidden", status(5, true, true, time.Hour), false},
		{"featured does not rescue expired", status(6, true, false, 50 * time.Hour), false},
	}

	var p Policy
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := p.Visible([]models.Status{tt.s}, now)
			if tt.visible {
				require.Len(t, got, 1)
				assert.Equal(t, tt.s.ID, got[0].ID)
			} else {
				assert.Empty(t, got)
			}
		})
	}
}

func TestVisible_PreservesOrderAndInput(t *testing.T) {
	in := []models.Status{
		status(1, false, false, time.Hour),
		status(2, false, true, time.Hour),
		status(3, true, false, 2 * time.Hour),
		status(4, false, false, 49 * time.Hour),
		status(5, false, false, 3 * time.Hour),
	}
	p := Policy{}

	got := p.Visible(in, now)
	assert.Equal(t, []uint{1, 3, 5}, ids(got))

	// The input slice is untouched.
	assert.Len(t, in, 5)
	assert.Equal(t, uint(2), in[1].ID)
}

func TestRank_FeaturedBeforeRecency(t *testing.T) {
	a := status(1, false, false, 0) // newest, not featured
	b := status(2, true, false, 10*time.Hour)

	got := Rank([]models.Status{a, b})
	assert.Equal(t, []uint{2, 1}, ids(got))
}

func TestRank_RecencyWithinFeatureTier(t *testing.T) {
	in := []models.Status{
		status(1, false, false, 3 * time.Hour),
		status(2, true, false, 5 * time.Hour),
		status(3, false, false, time.Hour),
		status(4, true, false, time.Minute),
	}

	got := Rank(in)
	assert.Equal(t, []uint{4, 2, 3, 1}, ids(got))
}

func TestRank_StableOnSortedInput(t *testing.T) {
	in := []models.Status{
		status(1, true, false, time.Hour),
		status(2, true, false, 2 * time.Hour),
		status(3, false, false, time.Minute),
		status(4, false, false, time.Hour),
	}

	got := Rank(in)
	assert.Equal(t, ids(in), ids(got), "already-sorted input must come back unchanged")
}

func TestRank_TiesKeepInputOrder(t *testing.T) {
	// Identical featured flag and timestamp: relative order must survive so
	// re-renders triggered by counter updates never visually shuffle.
	a := status(1, false, false, time.Hour)
	b := status(2, false, false, time.Hour)
	c := status(3, false, false, time.Hour)

	got := Rank([]models.Status{a, b, c})
	assert.Equal(t, []uint{1, 2, 3}, ids(got))

	got = Rank([]models.Status{c, a, b})
	assert.Equal(t, []uint{3, 1, 2}, ids(got))
}

func TestRank_DoesNotMutateInput(t *testing.T) {
	in := []models.Status{
		status(1, false, false, 2 * time.Hour),
		status(2, true, false, time.Hour),
	}
	_ = Rank(in)
	assert.Equal(t, []uint{1, 2}, ids(in))
}

func TestCompose_EndToEnd(t *testing.T) {
	snapshot := []models.Status{
		status(1, false, false, time.Hour),
		status(2, true, false, 40 * time.Hour),
		status(3, false, true, time.Hour),
		status(4, false, false, 50 * time.Hour),
	}

	var p Policy
	got := p.Compose(snapshot, now)
	assert.Equal(t, []uint{2, 1}, ids(got), "hidden #3 and expired #4 are gone; featured #2 leads despite being older")
}

func TestCompose_EmptySnapshot(t *testing.T) {
	var p Policy
	assert.Empty(t, p.Compose(nil, now))
	assert.Empty(t, p.Compose([]models.Status{}, now))
}
