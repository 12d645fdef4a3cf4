package layout

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) ListLayouts(ctx context.Context, courseID uint) ([]Layout, error) {
	if err := s.ensureCourse(ctx, courseID); err != nil {
		return nil, err
	}

	layouts, err := s.repo.ListLayouts(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if layouts == nil {
		layouts = []Layout{}
	}
	return layouts, nil
}

// GetLayout returns the layout only if it belongs to courseID.
func (s *Service) GetLayout(ctx context.Context, courseID, layoutID uint) (*Layout, error) {
	if err := s.ensureCourse(ctx, courseID); err != nil {
		return nil, err
	}
	return s.layoutOfCourse(ctx, courseID, layoutID)
}

func (s *Service) CreateLayout(ctx context.Context, courseID uint, input LayoutInput) (*Layout, error) {
	input.Name = strings.TrimSpace(input.Name)
	if err := checkHoleNumbers(input.Holes); err != nil {
		return nil, err
	}
	if err := s.ensureCourse(ctx, courseID); err != nil {
		return nil, err
	}

	exists, err := s.repo.LayoutExists(ctx, courseID, input.Name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrLayoutExists
	}

	layout := Layout{
		Name:     input.Name,
		CourseID: courseID,
		Holes:    toHoles(input.Holes),
	}
	if err := s.repo.CreateLayout(ctx, &layout); err != nil {
		return nil, err
	}

	return &layout, nil
}

// UpdateLayout renames the layout and replaces its whole hole set. Replaced
// holes get new ids, so scores recorded against the old holes keep their
// hole number and strokes but lose the hole reference.
func (s *Service) UpdateLayout(ctx context.Context, courseID, layoutID uint, input LayoutInput) (*Layout, error) {
	input.Name = strings.TrimSpace(input.Name)
	if err := checkHoleNumbers(input.Holes); err != nil {
		return nil, err
	}
	if err := s.ensureCourse(ctx, courseID); err != nil {
		return nil, err
	}

	layout, err := s.layoutOfCourse(ctx, courseID, layoutID)
	if err != nil {
		return nil, err
	}

	existing, err := s.repo.FindLayoutByName(ctx, courseID, input.Name)
	if err != nil && !errors.Is(err, ErrLayoutNotFound) {
		return nil, err
	}
	if existing != nil && existing.ID != layout.ID {
		return nil, ErrLayoutExists
	}

	err = s.repo.Transaction(ctx, func(tx Repository) error {
		if err := tx.UpdateLayoutName(ctx, layout.ID, input.Name); err != nil {
			return err
		}
		holes, err := tx.ReplaceHoles(ctx, layout.ID, toHoles(input.Holes))
		if err != nil {
			return err
		}
		layout.Name = input.Name
		layout.Holes = holes
		return nil
	})
	if err != nil {
		return nil, err
	}

	return layout, nil
}

func (s *Service) DeleteLayout(ctx context.Context, courseID, layoutID uint) error {
	if err := s.ensureCourse(ctx, courseID); err != nil {
		return err
	}
	if _, err := s.layoutOfCourse(ctx, courseID, layoutID); err != nil {
		return err
	}

	deleted, err := s.repo.DeleteLayout(ctx, layoutID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrLayoutNotFound
	}
	return nil
}

func (s *Service) ensureCourse(ctx context.Context, courseID uint) error {
	exists, err := s.repo.CourseExists(ctx, courseID)
	if err != nil {
		return err
	}
	if !exists {
		return ErrCourseNotFound
	}
	return nil
}

func (s *Service) layoutOfCourse(ctx context.Context, courseID, layoutID uint) (*Layout, error) {
	layout, err := s.repo.GetLayoutByID(ctx, layoutID)
	if err != nil {
		return nil, err
	}
	if layout.CourseID != courseID {
		return nil, ErrLayoutNotFound
	}
	return layout, nil
}

func checkHoleNumbers(holes []HoleInput) error {
	seen := make(map[int]struct{}, len(holes))
	for _, hole := range holes {
		if _, ok := seen[hole.Number]; ok {
			return fmt.Errorf("%w: hole %d listed twice", ErrDuplicateHoleNumber, hole.Number)
		}
		seen[hole.Number] = struct{}{}
	}
	return nil
}

func toHoles(inputs []HoleInput) []Hole {
	holes := make([]Hole, 0, len(inputs))
	for _, input := range inputs {
		holes = append(holes, Hole{
			Number:   input.Number,
			Par:      input.Par,
			Distance: input.Distance,
		})
	}
	return holes
}
