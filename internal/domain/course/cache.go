package course

import "time"

// ListCache holds the full course list between writes. Get reports the
// cache generation; Clear starts a new one, and Set drops a list read under
// an older generation.
type ListCache interface {
	Get() ([]Course, uint64, bool)
	Set(generation uint64, courses []Course, ttl time.Duration)
	Clear()
}

type noopListCache struct{}

func (noopListCache) Get() ([]Course, uint64, bool) {
	return nil, 0, false
}

func (noopListCache) Set(uint64, []Course, time.Duration) {}

func (noopListCache) Clear() {}
