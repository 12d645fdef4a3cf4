package course

import (
	"context"
	"errors"
	"strings"
	"time"
)

type Service struct {
	repo     Repository
	cache    ListCache
	cacheTTL time.Duration
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, cache: noopListCache{}}
}

// WithListCache serves ListCourses from cache for up to ttl. Every course
// write clears it.
func (s *Service) WithListCache(cache ListCache, ttl time.Duration) *Service {
	if cache == nil || ttl <= 0 {
		s.cache = noopListCache{}
		s.cacheTTL = 0
		return s
	}
	s.cache = cache
	s.cacheTTL = ttl
	return s
}

func (s *Service) ListCourses(ctx context.Context) ([]Course, error) {
	cached, generation, ok := s.cache.Get()
	if ok {
		return cached, nil
	}

	courses, err := s.repo.ListCourses(ctx)
	if err != nil {
		return nil, err
	}
	if courses == nil {
		courses = []Course{}
	}
	s.cache.Set(generation, courses, s.cacheTTL)
	return courses, nil
}

func (s *Service) GetCourse(ctx context.Context, id uint) (*Course, error) {
	return s.repo.GetCourseByID(ctx, id)
}

// CreateCourse rejects a course whose name already exists at the same
// city and state. An existing location for that city and state is reused.
func (s *Service) CreateCourse(ctx context.Context, input CourseInput) (*Course, error) {
	input = normalizeInput(input)

	exists, err := s.repo.CourseExists(ctx, input.Name, input.City, input.State)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrCourseExists
	}

	var created Course
	err = s.repo.Transaction(ctx, func(tx Repository) error {
		location, err := findOrCreateLocation(ctx, tx, input)
		if err != nil {
			return err
		}

		created = Course{
			Name:       input.Name,
			LocationID: location.ID,
			Location:   *location,
		}
		return tx.CreateCourse(ctx, &created)
	})
	if err != nil {
		return nil, err
	}
	s.cache.Clear()

	return &created, nil
}

// UpdateCourse replaces the name and location of a course. The new
// (name, city, state) may not collide with a different course. Submitted
// coordinates are written to the location even when it is reused.
func (s *Service) UpdateCourse(ctx context.Context, id uint, input CourseInput) (*Course, error) {
	input = normalizeInput(input)

	current, err := s.repo.GetCourseByID(ctx, id)
	if err != nil {
		return nil, err
	}

	existing, err := s.repo.FindCourse(ctx, input.Name, input.City, input.State)
	if err != nil && !errors.Is(err, ErrCourseNotFound) {
		return nil, err
	}
	if existing != nil && existing.ID != current.ID {
		return nil, ErrCourseExists
	}

	err = s.repo.Transaction(ctx, func(tx Repository) error {
		location, err := findOrCreateLocation(ctx, tx, input)
		if err != nil {
			return err
		}
		if location.Lat != input.Lat || location.Lon != input.Lon {
			if err := tx.UpdateLocationCoordinates(ctx, location.ID, input.Lat, input.Lon); err != nil {
				return err
			}
			location.Lat = input.Lat
			location.Lon = input.Lon
		}

		current.Name = input.Name
		current.LocationID = location.ID
		current.Location = *location
		return tx.UpdateCourse(ctx, current)
	})
	if err != nil {
		return nil, err
	}
	s.cache.Clear()

	return current, nil
}

// DeleteCourse is idempotent: deleting an absent course succeeds.
func (s *Service) DeleteCourse(ctx context.Context, id uint) error {
	deleted, err := s.repo.DeleteCourse(ctx, id)
	if err != nil {
		return err
	}
	if deleted {
		s.cache.Clear()
	}
	return nil
}

func findOrCreateLocation(ctx context.Context, repo Repository, input CourseInput) (*Location, error) {
	location, err := repo.FindLocation(ctx, input.City, input.State)
	if err == nil {
		return location, nil
	}
	if !errors.Is(err, ErrLocationNotFound) {
		return nil, err
	}

	location = &Location{
		City:  input.City,
		State: input.State,
		Lat:   input.Lat,
		Lon:   input.Lon,
	}
	if err := repo.CreateLocation(ctx, location); err != nil {
		return nil, err
	}
	return location, nil
}

func normalizeInput(input CourseInput) CourseInput {
	input.Name = strings.TrimSpace(input.Name)
	input.City = strings.TrimSpace(input.City)
	input.State = strings.TrimSpace(input.State)
	return input
}
