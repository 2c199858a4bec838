package engine

import (
	"time"

	cache "github.com/patrickmn/go-cache"

	"github.com/yourusername/ekiden-tracker/internal/models"
)

const (
	latestSnapshotKey = "snapshot/latest"
	coursePathKey     = "document/course_path"

	// The course polyline is static for an edition; refetch rarely.
	courseTTL = 6 * time.Hour
)

// SnapshotStore holds the last successful snapshot and long-lived document
// caches. The latest snapshot never expires: on upstream failure the
// dashboard keeps showing stale data rather than nothing.
type SnapshotStore struct {
	cache *cache.Cache
}

// NewSnapshotStore creates an empty store
func NewSnapshotStore() *SnapshotStore {
	return &SnapshotStore{
		cache: cache.New(cache.NoExpiration, 30*time.Minute),
	}
}

// Latest returns the most recent successful snapshot, or nil before the
// first completed cycle.
func (s *SnapshotStore) Latest() *Snapshot {
	if v, ok := s.cache.Get(latestSnapshotKey); ok {
		if snap, ok := v.(*Snapshot); ok {
			return snap
		}
	}
	return nil
}

// SetLatest replaces the published snapshot. Last write wins; an older
// in-flight cycle that lands later simply overwrites a newer one, which the
// next poll corrects.
func (s *SnapshotStore) SetLatest(snap *Snapshot) {
	s.cache.Set(latestSnapshotKey, snap, cache.NoExpiration)
}

// CoursePath returns the cached course polyline, if still fresh
func (s *SnapshotStore) CoursePath() (models.CoursePath, bool) {
	if v, ok := s.cache.Get(coursePathKey); ok {
		if path, ok := v.(models.CoursePath); ok {
			return path, true
		}
	}
	return nil, false
}

// SetCoursePath caches the course polyline with its TTL
func (s *SnapshotStore) SetCoursePath(path models.CoursePath) {
	s.cache.Set(coursePathKey, path, courseTTL)
}
