package course

import "context"

type Repository interface {
	Transaction(ctx context.Context, fn func(Repository) error) error
	ListCourses(ctx context.Context) ([]Course, error)
	GetCourseByID(ctx context.Context, id uint) (*Course, error)
	FindCourse(ctx context.Context, name, city, state string) (*Course, error)
	CourseExists(ctx context.Context, name, city, state string) (bool, error)
	FindLocation(ctx context.Context, city, state string) (*Location, error)
	CreateLocation(ctx context.Context, location *Location) error
	UpdateLocationCoordinates(ctx context.Context, id uint, lat, lon float64) error
	CreateCourse(ctx context.Context, course *Course) error
	UpdateCourse(ctx context.Context, course *Course) error
	DeleteCourse(ctx context.Context, id uint) (bool, error)
}
