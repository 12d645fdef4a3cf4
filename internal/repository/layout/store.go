package layout

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	layoutdomain "scorekeeper/internal/domain/layout"
)

type GormRepository struct {
	db *gorm.DB
}

func NewGorm(db *gorm.DB) *GormRepository {
	return &GormRepository{db: db}
}

func (r *GormRepository) Transaction(ctx context.Context, fn func(layoutdomain.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&GormRepository{db: tx})
	})
}

func (r *GormRepository) CourseExists(ctx context.Context, courseID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Table("courses").
		Where("id = ?", courseID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *GormRepository) withHoles(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Preload("Holes", func(db *gorm.DB) *gorm.DB {
		return db.Order("number asc")
	})
}

func (r *GormRepository) ListLayouts(ctx context.Context, courseID uint) ([]layoutdomain.Layout, error) {
	var layouts []layoutdomain.Layout
	if err := r.withHoles(ctx).
		Where("course_id = ?", courseID).
		Order("id asc").
		Find(&layouts).Error; err != nil {
		return nil, err
	}
	return layouts, nil
}

func (r *GormRepository) GetLayoutByID(ctx context.Context, layoutID uint) (*layoutdomain.Layout, error) {
	var layout layoutdomain.Layout
	if err := r.withHoles(ctx).
		Where("id = ?", layoutID).
		First(&layout).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, layoutdomain.ErrLayoutNotFound
		}
		return nil, err
	}
	return &layout, nil
}

func (r *GormRepository) LayoutExists(ctx context.Context, courseID uint, name string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&layoutdomain.Layout{}).
		Where("course_id = ? AND name = ?", courseID, name).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *GormRepository) FindLayoutByName(ctx context.Context, courseID uint, name string) (*layoutdomain.Layout, error) {
	var layout layoutdomain.Layout
	if err := r.db.WithContext(ctx).
		Where("course_id = ? AND name = ?", courseID, name).
		First(&layout).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, layoutdomain.ErrLayoutNotFound
		}
		return nil, err
	}
	return &layout, nil
}

// CreateLayout inserts the layout and its holes in one statement batch.
func (r *GormRepository) CreateLayout(ctx context.Context, layout *layoutdomain.Layout) error {
	err := r.db.WithContext(ctx).Create(layout).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return layoutdomain.ErrLayoutExists
	}
	return err
}

func (r *GormRepository) UpdateLayoutName(ctx context.Context, layoutID uint, name string) error {
	result := r.db.WithContext(ctx).
		Model(&layoutdomain.Layout{}).
		Where("id = ?", layoutID).
		Updates(map[string]interface{}{
			"name":       name,
			"updated_at": time.Now().UTC(),
		})
	if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
		return layoutdomain.ErrLayoutExists
	}
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return layoutdomain.ErrLayoutNotFound
	}
	return nil
}

func (r *GormRepository) ReplaceHoles(ctx context.Context, layoutID uint, holes []layoutdomain.Hole) ([]layoutdomain.Hole, error) {
	if err := r.db.WithContext(ctx).
		Where("layout_id = ?", layoutID).
		Delete(&layoutdomain.Hole{}).Error; err != nil {
		return nil, err
	}

	if len(holes) == 0 {
		return []layoutdomain.Hole{}, nil
	}

	for i := range holes {
		holes[i].ID = 0
		holes[i].LayoutID = layoutID
	}
	if err := r.db.WithContext(ctx).Create(&holes).Error; err != nil {
		return nil, err
	}
	return holes, nil
}

func (r *GormRepository) DeleteLayout(ctx context.Context, layoutID uint) (bool, error) {
	result := r.db.WithContext(ctx).Delete(&layoutdomain.Layout{}, "id = ?", layoutID)
	return result.RowsAffected > 0, result.Error
}
