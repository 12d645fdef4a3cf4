package course

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	coursedomain "scorekeeper/internal/domain/course"
)

const joinLocations = "JOIN locations ON locations.id = courses.location_id"

type GormRepository struct {
	db *gorm.DB
}

func NewGorm(db *gorm.DB) *GormRepository {
	return &GormRepository{db: db}
}

func (r *GormRepository) Transaction(ctx context.Context, fn func(coursedomain.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&GormRepository{db: tx})
	})
}

func (r *GormRepository) ListCourses(ctx context.Context) ([]coursedomain.Course, error) {
	var courses []coursedomain.Course
	if err := r.db.WithContext(ctx).
		Preload("Location").
		Order("id asc").
		Find(&courses).Error; err != nil {
		return nil, err
	}
	return courses, nil
}

func (r *GormRepository) GetCourseByID(ctx context.Context, id uint) (*coursedomain.Course, error) {
	var course coursedomain.Course
	if err := r.db.WithContext(ctx).
		Preload("Location").
		Where("id = ?", id).
		First(&course).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, coursedomain.ErrCourseNotFound
		}
		return nil, err
	}
	return &course, nil
}

func (r *GormRepository) FindCourse(ctx context.Context, name, city, state string) (*coursedomain.Course, error) {
	var course coursedomain.Course
	if err := r.db.WithContext(ctx).
		Joins(joinLocations).
		Preload("Location").
		Where("courses.name = ? AND locations.city = ? AND locations.state = ?", name, city, state).
		Order("courses.id asc").
		Take(&course).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, coursedomain.ErrCourseNotFound
		}
		return nil, err
	}
	return &course, nil
}

func (r *GormRepository) CourseExists(ctx context.Context, name, city, state string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&coursedomain.Course{}).
		Joins(joinLocations).
		Where("courses.name = ? AND locations.city = ? AND locations.state = ?", name, city, state).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *GormRepository) FindLocation(ctx context.Context, city, state string) (*coursedomain.Location, error) {
	var location coursedomain.Location
	if err := r.db.WithContext(ctx).
		Where("city = ? AND state = ?", city, state).
		Order("id asc").
		First(&location).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, coursedomain.ErrLocationNotFound
		}
		return nil, err
	}
	return &location, nil
}

// CreateLocation inserts the location, or loads the row another request
// inserted for the same city and state in the meantime.
func (r *GormRepository) CreateLocation(ctx context.Context, location *coursedomain.Location) error {
	result := r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(location)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected > 0 {
		return nil
	}

	existing, err := r.FindLocation(ctx, location.City, location.State)
	if err != nil {
		return err
	}
	*location = *existing
	return nil
}

func (r *GormRepository) UpdateLocationCoordinates(ctx context.Context, id uint, lat, lon float64) error {
	result := r.db.WithContext(ctx).
		Model(&coursedomain.Location{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"lat": lat, "lon": lon})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return coursedomain.ErrLocationNotFound
	}
	return nil
}

func (r *GormRepository) CreateCourse(ctx context.Context, course *coursedomain.Course) error {
	err := r.db.WithContext(ctx).Omit(clause.Associations).Create(course).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return coursedomain.ErrCourseExists
	}
	return err
}

func (r *GormRepository) UpdateCourse(ctx context.Context, course *coursedomain.Course) error {
	course.UpdatedAt = time.Now().UTC()
	result := r.db.WithContext(ctx).
		Model(&coursedomain.Course{}).
		Where("id = ?", course.ID).
		Updates(map[string]interface{}{
			"name":        course.Name,
			"location_id": course.LocationID,
			"updated_at":  course.UpdatedAt,
		})
	if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
		return coursedomain.ErrCourseExists
	}
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return coursedomain.ErrCourseNotFound
	}
	return nil
}

// DeleteCourse removes the course. Layouts, holes and score cards on those
// layouts go with it through ON DELETE CASCADE.
func (r *GormRepository) DeleteCourse(ctx context.Context, id uint) (bool, error) {
	result := r.db.WithContext(ctx).Delete(&coursedomain.Course{}, "id = ?", id)
	return result.RowsAffected > 0, result.Error
}
