package layout

import "context"

type Repository interface {
	Transaction(ctx context.Context, fn func(Repository) error) error
	CourseExists(ctx context.Context, courseID uint) (bool, error)
	ListLayouts(ctx context.Context, courseID uint) ([]Layout, error)
	GetLayoutByID(ctx context.Context, layoutID uint) (*Layout, error)
	LayoutExists(ctx context.Context, courseID uint, name string) (bool, error)
	FindLayoutByName(ctx context.Context, courseID uint, name string) (*Layout, error)
	CreateLayout(ctx context.Context, layout *Layout) error
	UpdateLayoutName(ctx context.Context, layoutID uint, name string) error
	// ReplaceHoles deletes every hole of the layout and inserts holes with new ids.
	ReplaceHoles(ctx context.Context, layoutID uint, holes []Hole) ([]Hole, error)
	DeleteLayout(ctx context.Context, layoutID uint) (bool, error)
}
