package inmemory

import (
	"sync"
	"time"

	coursedomain "scorekeeper/internal/domain/course"
)

// CourseListCache keeps one copy of the course list until it expires or is
// cleared. A Set carrying a generation older than the last Clear is ignored.
type CourseListCache struct {
	mu         sync.RWMutex
	courses    []coursedomain.Course
	expiresAt  time.Time
	generation uint64
	now        func() time.Time
}

func NewCourseListCache() *CourseListCache {
	return &CourseListCache{now: time.Now}
}

func (c *CourseListCache) Get() ([]coursedomain.Course, uint64, bool) {
	now := c.now()

	c.mu.RLock()
	courses, expiresAt, generation := c.courses, c.expiresAt, c.generation
	c.mu.RUnlock()
	if courses == nil {
		return nil, generation, false
	}

	if !expiresAt.After(now) {
		c.mu.Lock()
		if c.courses != nil && !c.expiresAt.After(now) {
			c.courses = nil
		}
		generation = c.generation
		c.mu.Unlock()
		return nil, generation, false
	}

	return cloneCourses(courses), generation, true
}

func (c *CourseListCache) Set(generation uint64, courses []coursedomain.Course, ttl time.Duration) {
	if ttl <= 0 {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if generation != c.generation {
		return
	}
	c.courses = cloneCourses(courses)
	c.expiresAt = c.now().Add(ttl)
}

func (c *CourseListCache) Clear() {
	c.mu.Lock()
	c.courses = nil
	c.generation++
	c.mu.Unlock()
}

func cloneCourses(courses []coursedomain.Course) []coursedomain.Course {
	if courses == nil {
		return nil
	}
	cloned := make([]coursedomain.Course, len(courses))
	copy(cloned, courses)
	return cloned
}
