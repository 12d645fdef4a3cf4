package scorecard

import (
	"context"
	"time"
)

type Repository interface {
	Transaction(ctx context.Context, fn func(Repository) error) error
	UserExists(ctx context.Context, userID uint) (bool, error)
	GetLayoutRef(ctx context.Context, layoutID uint) (*LayoutRef, error)
	ListScoreCards(ctx context.Context, userID uint) ([]ScoreCard, error)
	GetScoreCardByID(ctx context.Context, id uint) (*ScoreCard, error)
	CreateScoreCard(ctx context.Context, card *ScoreCard) error
	UpdateScoreCardDate(ctx context.Context, id uint, date time.Time) error
	ReplaceScores(ctx context.Context, cardID uint, scores []Score) ([]Score, error)
	DeleteScoreCard(ctx context.Context, id uint) (bool, error)
}
