package layout

import (
	"context"
	"errors"
	"testing"
)

type fakeLayoutRepo struct {
	courses  map[uint]bool
	layouts  map[uint]*Layout
	nextID   uint
	replaced int
}

func newFakeLayoutRepo(courseIDs ...uint) *fakeLayoutRepo {
	repo := &fakeLayoutRepo{
		courses: make(map[uint]bool),
		layouts: make(map[uint]*Layout),
	}
	for _, id := range courseIDs {
		repo.courses[id] = true
	}
	return repo
}

func (r *fakeLayoutRepo) id() uint {
	r.nextID++
	return r.nextID
}

func (r *fakeLayoutRepo) Transaction(ctx context.Context, fn func(Repository) error) error {
	return fn(r)
}

func (r *fakeLayoutRepo) CourseExists(ctx context.Context, courseID uint) (bool, error) {
	return r.courses[courseID], nil
}

func (r *fakeLayoutRepo) ListLayouts(ctx context.Context, courseID uint) ([]Layout, error) {
	var result []Layout
	for _, layout := range r.layouts {
		if layout.CourseID == courseID {
			result = append(result, *layout)
		}
	}
	return result, nil
}

func (r *fakeLayoutRepo) GetLayoutByID(ctx context.Context, layoutID uint) (*Layout, error) {
	layout, ok := r.layouts[layoutID]
	if !ok {
		return nil, ErrLayoutNotFound
	}
	copied := *layout
	return &copied, nil
}

func (r *fakeLayoutRepo) LayoutExists(ctx context.Context, courseID uint, name string) (bool, error) {
	_, err := r.FindLayoutByName(ctx, courseID, name)
	return err == nil, nil
}

func (r *fakeLayoutRepo) FindLayoutByName(ctx context.Context, courseID uint, name string) (*Layout, error) {
	for _, layout := range r.layouts {
		if layout.CourseID == courseID && layout.Name == name {
			copied := *layout
			return &copied, nil
		}
	}
	return nil, ErrLayoutNotFound
}

func (r *fakeLayoutRepo) CreateLayout(ctx context.Context, layout *Layout) error {
	layout.ID = r.id()
	for i := range layout.Holes {
		layout.Holes[i].ID = r.id()
		layout.Holes[i].LayoutID = layout.ID
	}
	copied := *layout
	r.layouts[layout.ID] = &copied
	return nil
}

func (r *fakeLayoutRepo) UpdateLayoutName(ctx context.Context, layoutID uint, name string) error {
	layout, ok := r.layouts[layoutID]
	if !ok {
		return ErrLayoutNotFound
	}
	layout.Name = name
	return nil
}

func (r *fakeLayoutRepo) ReplaceHoles(ctx context.Context, layoutID uint, holes []Hole) ([]Hole, error) {
	layout, ok := r.layouts[layoutID]
	if !ok {
		return nil, ErrLayoutNotFound
	}
	for i := range holes {
		holes[i].ID = r.id()
		holes[i].LayoutID = layoutID
	}
	layout.Holes = holes
	r.replaced++
	return holes, nil
}

func (r *fakeLayoutRepo) DeleteLayout(ctx context.Context, layoutID uint) (bool, error) {
	if _, ok := r.layouts[layoutID]; !ok {
		return false, nil
	}
	delete(r.layouts, layoutID)
	return true, nil
}

func frontNine() LayoutInput {
	holes := make([]HoleInput, 0, 9)
	for i := 1; i <= 9; i++ {
		holes = append(holes, HoleInput{Number: i, Par: 3, Distance: 250 + i*10})
	}
	return LayoutInput{Name: "Front Nine", Holes: holes}
}

func TestCreateLayoutSuccess(t *testing.T) {
	repo := newFakeLayoutRepo(1)
	svc := NewService(repo)

	result, err := svc.CreateLayout(context.Background(), 1, frontNine())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if result.ID == 0 || result.CourseID != 1 {
		t.Fatalf("unexpected layout %+v", result)
	}
	if len(result.Holes) != 9 {
		t.Fatalf("expected 9 holes, got %d", len(result.Holes))
	}
}

func TestCreateLayoutCourseNotFound(t *testing.T) {
	svc := NewService(newFakeLayoutRepo())
	_, err := svc.CreateLayout(context.Background(), 7, frontNine())
	if !errors.Is(err, ErrCourseNotFound) {
		t.Fatalf("expected ErrCourseNotFound, got %v", err)
	}
}

func TestCreateLayoutDuplicateName(t *testing.T) {
	svc := NewService(newFakeLayoutRepo(1, 2))
	if _, err := svc.CreateLayout(context.Background(), 1, frontNine()); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if _, err := svc.CreateLayout(context.Background(), 1, frontNine()); !errors.Is(err, ErrLayoutExists) {
		t.Fatalf("expected ErrLayoutExists, got %v", err)
	}
	if _, err := svc.CreateLayout(context.Background(), 2, frontNine()); err != nil {
		t.Fatalf("expected same name on another course to succeed, got %v", err)
	}
}

func TestCreateLayoutDuplicateHoleNumber(t *testing.T) {
	repo := newFakeLayoutRepo()
	svc := NewService(repo)

	input := frontNine()
	input.Holes = append(input.Holes, HoleInput{Number: 3, Par: 4, Distance: 400})

	// Checked before the course lookup, so a missing course still yields the body error.
	_, err := svc.CreateLayout(context.Background(), 1, input)
	if !errors.Is(err, ErrDuplicateHoleNumber) {
		t.Fatalf("expected ErrDuplicateHoleNumber, got %v", err)
	}
}

func TestGetLayoutWrongCourse(t *testing.T) {
	svc := NewService(newFakeLayoutRepo(1, 2))
	created, err := svc.CreateLayout(context.Background(), 1, frontNine())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if _, err := svc.GetLayout(context.Background(), 2, created.ID); !errors.Is(err, ErrLayoutNotFound) {
		t.Fatalf("expected ErrLayoutNotFound, got %v", err)
	}
	if _, err := svc.GetLayout(context.Background(), 1, created.ID); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
}

func TestUpdateLayoutReplacesHoles(t *testing.T) {
	repo := newFakeLayoutRepo(1)
	svc := NewService(repo)
	created, err := svc.CreateLayout(context.Background(), 1, frontNine())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	oldIDs := make(map[uint]bool)
	for _, hole := range created.Holes {
		oldIDs[hole.ID] = true
	}

	updated, err := svc.UpdateLayout(context.Background(), 1, created.ID, LayoutInput{
		Name:  "Short",
		Holes: []HoleInput{{Number: 1, Par: 3, Distance: 200}, {Number: 2, Par: 3, Distance: 210}},
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if updated.Name != "Short" || len(updated.Holes) != 2 {
		t.Fatalf("unexpected layout %+v", updated)
	}
	for _, hole := range updated.Holes {
		if oldIDs[hole.ID] {
			t.Fatalf("expected new hole ids, hole %d kept id %d", hole.Number, hole.ID)
		}
	}
	if repo.replaced != 1 {
		t.Fatalf("expected one replace, got %d", repo.replaced)
	}
}

func TestUpdateLayoutNameCollision(t *testing.T) {
	svc := NewService(newFakeLayoutRepo(1))
	if _, err := svc.CreateLayout(context.Background(), 1, frontNine()); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	back := frontNine()
	back.Name = "Back Nine"
	second, err := svc.CreateLayout(context.Background(), 1, back)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	_, err = svc.UpdateLayout(context.Background(), 1, second.ID, frontNine())
	if !errors.Is(err, ErrLayoutExists) {
		t.Fatalf("expected ErrLayoutExists, got %v", err)
	}

	if _, err := svc.UpdateLayout(context.Background(), 1, second.ID, back); err != nil {
		t.Fatalf("expected keeping own name to succeed, got %v", err)
	}
}

func TestDeleteLayout(t *testing.T) {
	repo := newFakeLayoutRepo(1, 2)
	svc := NewService(repo)
	created, err := svc.CreateLayout(context.Background(), 1, frontNine())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if err := svc.DeleteLayout(context.Background(), 2, created.ID); !errors.Is(err, ErrLayoutNotFound) {
		t.Fatalf("expected ErrLayoutNotFound for foreign course, got %v", err)
	}
	if err := svc.DeleteLayout(context.Background(), 1, created.ID); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if _, ok := repo.layouts[created.ID]; ok {
		t.Fatalf("expected layout removed")
	}
}

func TestListLayoutsCourseNotFound(t *testing.T) {
	svc := NewService(newFakeLayoutRepo())
	if _, err := svc.ListLayouts(context.Background(), 3); !errors.Is(err, ErrCourseNotFound) {
		t.Fatalf("expected ErrCourseNotFound, got %v", err)
	}
}
