package inmemory

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	coursedomain "scorekeeper/internal/domain/course"
)

func TestCourseListCacheExpires(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	cache := NewCourseListCache()
	cache.now = func() time.Time { return now }

	_, generation, ok := cache.Get()
	assert.False(t, ok)

	cache.Set(generation, []coursedomain.Course{{ID: 1, Name: "Sedgley Woods"}}, time.Minute)
	courses, _, ok := cache.Get()
	require.True(t, ok)
	assert.Equal(t, "Sedgley Woods", courses[0].Name)

	now = now.Add(time.Minute)
	_, _, ok = cache.Get()
	assert.False(t, ok)
}

func TestCourseListCacheReturnsCopies(t *testing.T) {
	cache := NewCourseListCache()
	source := []coursedomain.Course{{ID: 1, Name: "Original"}}
	_, generation, _ := cache.Get()
	cache.Set(generation, source, time.Minute)
	source[0].Name = "Changed"

	courses, _, ok := cache.Get()
	require.True(t, ok)
	assert.Equal(t, "Original", courses[0].Name)

	courses[0].Name = "Mutated"
	again, _, _ := cache.Get()
	assert.Equal(t, "Original", again[0].Name)
}

func TestCourseListCacheKeepsEmptyList(t *testing.T) {
	cache := NewCourseListCache()
	_, generation, _ := cache.Get()
	cache.Set(generation, []coursedomain.Course{}, time.Minute)

	courses, _, ok := cache.Get()
	assert.True(t, ok)
	assert.Empty(t, courses)

	cache.Clear()
	_, _, ok = cache.Get()
	assert.False(t, ok)
}

func TestCourseListCacheDropsListReadBeforeClear(t *testing.T) {
	cache := NewCourseListCache()

	_, before, ok := cache.Get()
	require.False(t, ok)

	cache.Clear()
	cache.Set(before, []coursedomain.Course{{ID: 1, Name: "Stale"}}, time.Minute)

	_, after, ok := cache.Get()
	assert.False(t, ok, "a list read before Clear must not be cached")
	assert.NotEqual(t, before, after)

	cache.Set(after, []coursedomain.Course{{ID: 1, Name: "Fresh"}, {ID: 2, Name: "New"}}, time.Minute)
	courses, _, ok := cache.Get()
	require.True(t, ok)
	assert.Len(t, courses, 2)
}
