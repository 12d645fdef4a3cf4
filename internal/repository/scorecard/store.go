package scorecard

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	scorecarddomain "scorekeeper/internal/domain/scorecard"
)

type GormRepository struct {
	db *gorm.DB
}

func NewGorm(db *gorm.DB) *GormRepository {
	return &GormRepository{db: db}
}

func (r *GormRepository) Transaction(ctx context.Context, fn func(scorecarddomain.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&GormRepository{db: tx})
	})
}

func (r *GormRepository) UserExists(ctx context.Context, userID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Table("users").
		Where("id = ?", userID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

type layoutRow struct {
	ID       uint
	CourseID uint
}

func (r *GormRepository) GetLayoutRef(ctx context.Context, layoutID uint) (*scorecarddomain.LayoutRef, error) {
	var row layoutRow
	if err := r.db.WithContext(ctx).
		Table("layouts").
		Select("id, course_id").
		Where("id = ?", layoutID).
		Take(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, scorecarddomain.ErrLayoutNotFound
		}
		return nil, err
	}

	var holes []scorecarddomain.HoleRef
	if err := r.db.WithContext(ctx).
		Table("holes").
		Select("id, number").
		Where("layout_id = ?", layoutID).
		Order("number asc").
		Find(&holes).Error; err != nil {
		return nil, err
	}

	return &scorecarddomain.LayoutRef{
		ID:       row.ID,
		CourseID: row.CourseID,
		Holes:    holes,
	}, nil
}

func (r *GormRepository) withScores(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Preload("Scores", func(db *gorm.DB) *gorm.DB {
		return db.Order("hole_number asc")
	})
}

func (r *GormRepository) ListScoreCards(ctx context.Context, userID uint) ([]scorecarddomain.ScoreCard, error) {
	var cards []scorecarddomain.ScoreCard
	if err := r.withScores(ctx).
		Where("user_id = ?", userID).
		Order("date asc, id asc").
		Find(&cards).Error; err != nil {
		return nil, err
	}

	if err := r.fillCourseIDs(ctx, cards); err != nil {
		return nil, err
	}
	return cards, nil
}

func (r *GormRepository) GetScoreCardByID(ctx context.Context, id uint) (*scorecarddomain.ScoreCard, error) {
	var card scorecarddomain.ScoreCard
	if err := r.withScores(ctx).
		Where("id = ?", id).
		First(&card).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, scorecarddomain.ErrScoreCardNotFound
		}
		return nil, err
	}

	cards := []scorecarddomain.ScoreCard{card}
	if err := r.fillCourseIDs(ctx, cards); err != nil {
		return nil, err
	}
	return &cards[0], nil
}

// fillCourseIDs resolves each card's course through its layout.
func (r *GormRepository) fillCourseIDs(ctx context.Context, cards []scorecarddomain.ScoreCard) error {
	if len(cards) == 0 {
		return nil
	}

	layoutIDs := make([]uint, 0, len(cards))
	for _, card := range cards {
		layoutIDs = append(layoutIDs, card.LayoutID)
	}

	var rows []layoutRow
	if err := r.db.WithContext(ctx).
		Table("layouts").
		Select("id, course_id").
		Where("id IN ?", layoutIDs).
		Find(&rows).Error; err != nil {
		return err
	}

	courses := make(map[uint]uint, len(rows))
	for _, row := range rows {
		courses[row.ID] = row.CourseID
	}
	for i := range cards {
		cards[i].CourseID = courses[cards[i].LayoutID]
	}
	return nil
}

func (r *GormRepository) CreateScoreCard(ctx context.Context, card *scorecarddomain.ScoreCard) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(card).Error
}

func (r *GormRepository) UpdateScoreCardDate(ctx context.Context, id uint, date time.Time) error {
	result := r.db.WithContext(ctx).
		Model(&scorecarddomain.ScoreCard{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"date":       date,
			"updated_at": time.Now().UTC(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return scorecarddomain.ErrScoreCardNotFound
	}
	return nil
}

func (r *GormRepository) ReplaceScores(ctx context.Context, cardID uint, scores []scorecarddomain.Score) ([]scorecarddomain.Score, error) {
	if err := r.db.WithContext(ctx).
		Where("score_card_id = ?", cardID).
		Delete(&scorecarddomain.Score{}).Error; err != nil {
		return nil, err
	}

	if len(scores) == 0 {
		return []scorecarddomain.Score{}, nil
	}

	for i := range scores {
		scores[i].ID = 0
		scores[i].ScoreCardID = cardID
	}
	if err := r.db.WithContext(ctx).Create(&scores).Error; err != nil {
		return nil, err
	}
	return scores, nil
}

func (r *GormRepository) DeleteScoreCard(ctx context.Context, id uint) (bool, error) {
	result := r.db.WithContext(ctx).Delete(&scorecarddomain.ScoreCard{}, "id = ?", id)
	return result.RowsAffected > 0, result.Error
}
