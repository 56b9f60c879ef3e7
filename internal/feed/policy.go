// Package feed implements the visibility and ranking policy for the status
// feed. A status is eligible for display iff it is not hidden and not older
// than the retention window; eligible statuses are ordered featured-first,
// then newest-first. The package is pure: callers hand it a materialized
// snapshot and a clock reading, and it never touches storage.
package feed

import (
	"sort"
	"time"

	"statusworld/internal/models"
)

// DefaultRetention is how long a status stays visible after creation.
const DefaultRetention = 48 * time.Hour

// Policy holds the retention window governing expiry. The zero value uses
// DefaultRetention.
type Policy struct {
	Retention time.Duration
}

func (p Policy) retention() time.Duration {
	if p.Retention <= 0 {
		return DefaultRetention
	}
	return p.Retention
}

// Expired reports whether a status created at createdAt has aged out of the
// feed as of now. The boundary is inclusive: a status exactly at the
// retention limit is still visible.
func (p Policy) Expired(createdAt, now time.Time) bool {
	return now.Sub(createdAt) > p.retention()
}

// Visible returns the subsequence of statuses that are neither hidden nor
// expired as of now. Input order is preserved and no status is duplicated or
// dropped for any other reason. Featured does not override either condition.
func (p Policy) Visible(statuses []models.Status, now time.Time) []models.Status {
	out := make([]models.Status, 0, len(statuses))
	for _, s := range statuses {
		if s.Hidden || p.Expired(s.CreatedAt, now) {
			continue
		}
		out = append(out, s)
	}
	return out
}

// Compose runs the full feed pipeline over a snapshot: filter out hidden and
// expired statuses, then rank what remains.
func (p Policy) Compose(statuses []models.Status, now time.Time) []models.Status {
	return Rank(p.Visible(statuses, now))
}

// Rank orders statuses featured-first, then by CreatedAt descending. The
// sort is stable so statuses with equal keys retain their input order; a
// counter update on an unrelated field must never reorder the feed between
// renders.
func Rank(statuses []models.Status) []models.Status {
	out := make([]models.Status, len(statuses))
	copy(out, statuses)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Featured != out[j].Featured {
			return out[i].Featured
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}
