package user

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	userdomain "scorekeeper/internal/domain/user"
)

type GormRepository struct {
	db *gorm.DB
}

func NewGorm(db *gorm.DB) *GormRepository {
	return &GormRepository{db: db}
}

func (r *GormRepository) GetUserByID(ctx context.Context, id uint) (*userdomain.User, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *GormRepository) GetUserByEmail(ctx context.Context, email string) (*userdomain.User, error) {
	return r.first(ctx, "email = ?", email)
}

func (r *GormRepository) first(ctx context.Context, query string, args ...interface{}) (*userdomain.User, error) {
	var user userdomain.User
	if err := r.db.WithContext(ctx).Where(query, args...).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, userdomain.ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *GormRepository) UserWithEmailExists(ctx context.Context, email string) (bool, error) {
	return r.exists(ctx, "email = ?", email)
}

func (r *GormRepository) UserWithUsernameExists(ctx context.Context, username string) (bool, error) {
	return r.exists(ctx, "username = ?", username)
}

func (r *GormRepository) exists(ctx context.Context, query string, args ...interface{}) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&userdomain.User{}).
		Where(query, args...).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *GormRepository) CreateUser(ctx context.Context, user *userdomain.User) error {
	err := r.db.WithContext(ctx).Create(user).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return userdomain.ErrUserExists
	}
	return err
}

func (r *GormRepository) UpdateUser(ctx context.Context, user *userdomain.User) error {
	user.UpdatedAt = time.Now().UTC()
	result := r.db.WithContext(ctx).
		Model(&userdomain.User{}).
		Where("id = ?", user.ID).
		Updates(map[string]interface{}{
			"first_name": user.FirstName,
			"last_name":  user.LastName,
			"email":      user.Email,
			"updated_at": user.UpdatedAt,
		})
	if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
		return userdomain.ErrEmailTaken
	}
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return userdomain.ErrUserNotFound
	}
	return nil
}

// DeleteUser removes the user and, through ON DELETE CASCADE, their score cards.
func (r *GormRepository) DeleteUser(ctx context.Context, id uint) (bool, error) {
	result := r.db.WithContext(ctx).Delete(&userdomain.User{}, "id = ?", id)
	return result.RowsAffected > 0, result.Error
}
