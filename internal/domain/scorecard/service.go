package scorecard

import (
	"context"
	"fmt"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) ListScoreCards(ctx context.Context, userID uint) ([]ScoreCard, error) {
	if err := s.ensureUser(ctx, userID); err != nil {
		return nil, err
	}

	cards, err := s.repo.ListScoreCards(ctx, userID)
	if err != nil {
		return nil, err
	}
	if cards == nil {
		cards = []ScoreCard{}
	}
	return cards, nil
}

// GetScoreCard returns the card only if it belongs to userID.
func (s *Service) GetScoreCard(ctx context.Context, userID, cardID uint) (*ScoreCard, error) {
	if err := s.ensureUser(ctx, userID); err != nil {
		return nil, err
	}
	return s.cardOfUser(ctx, userID, cardID)
}

// CreateScoreCard records a round on a layout. Every score must name a hole
// number of that layout; otherwise nothing is written.
func (s *Service) CreateScoreCard(ctx context.Context, userID uint, input CreateInput) (*ScoreCard, error) {
	if err := checkScoreNumbers(input.Scores); err != nil {
		return nil, err
	}
	if err := s.ensureUser(ctx, userID); err != nil {
		return nil, err
	}

	ref, err := s.repo.GetLayoutRef(ctx, input.LayoutID)
	if err != nil {
		return nil, err
	}
	scores, err := resolveScores(ref, input.Scores)
	if err != nil {
		return nil, err
	}

	card := ScoreCard{
		UserID:   userID,
		LayoutID: ref.ID,
		Date:     input.Date.UTC(),
	}
	err = s.repo.Transaction(ctx, func(tx Repository) error {
		if err := tx.CreateScoreCard(ctx, &card); err != nil {
			return err
		}
		saved, err := tx.ReplaceScores(ctx, card.ID, scores)
		if err != nil {
			return err
		}
		card.Scores = saved
		return nil
	})
	if err != nil {
		return nil, err
	}

	card.CourseID = ref.CourseID
	return &card, nil
}

// UpdateScoreCard replaces the date and the whole score list of a card.
// Scores are validated against the card's current layout.
func (s *Service) UpdateScoreCard(ctx context.Context, userID, cardID uint, input UpdateInput) (*ScoreCard, error) {
	if err := checkScoreNumbers(input.Scores); err != nil {
		return nil, err
	}
	if err := s.ensureUser(ctx, userID); err != nil {
		return nil, err
	}

	card, err := s.cardOfUser(ctx, userID, cardID)
	if err != nil {
		return nil, err
	}

	ref, err := s.repo.GetLayoutRef(ctx, card.LayoutID)
	if err != nil {
		return nil, err
	}
	scores, err := resolveScores(ref, input.Scores)
	if err != nil {
		return nil, err
	}

	date := input.Date.UTC()
	err = s.repo.Transaction(ctx, func(tx Repository) error {
		if err := tx.UpdateScoreCardDate(ctx, card.ID, date); err != nil {
			return err
		}
		saved, err := tx.ReplaceScores(ctx, card.ID, scores)
		if err != nil {
			return err
		}
		card.Date = date
		card.Scores = saved
		return nil
	})
	if err != nil {
		return nil, err
	}

	card.CourseID = ref.CourseID
	return card, nil
}

func (s *Service) DeleteScoreCard(ctx context.Context, userID, cardID uint) error {
	if err := s.ensureUser(ctx, userID); err != nil {
		return err
	}
	if _, err := s.cardOfUser(ctx, userID, cardID); err != nil {
		return err
	}

	deleted, err := s.repo.DeleteScoreCard(ctx, cardID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrScoreCardNotFound
	}
	return nil
}

func (s *Service) ensureUser(ctx context.Context, userID uint) error {
	exists, err := s.repo.UserExists(ctx, userID)
	if err != nil {
		return err
	}
	if !exists {
		return ErrUserNotFound
	}
	return nil
}

func (s *Service) cardOfUser(ctx context.Context, userID, cardID uint) (*ScoreCard, error) {
	card, err := s.repo.GetScoreCardByID(ctx, cardID)
	if err != nil {
		return nil, err
	}
	if card.UserID != userID {
		return nil, ErrScoreCardNotFound
	}
	return card, nil
}

func checkScoreNumbers(scores []ScoreInput) error {
	seen := make(map[int]struct{}, len(scores))
	for _, score := range scores {
		if _, ok := seen[score.Number]; ok {
			return fmt.Errorf("%w: hole %d listed twice", ErrDuplicateHoleNumber, score.Number)
		}
		seen[score.Number] = struct{}{}
	}
	return nil
}

func resolveScores(ref *LayoutRef, inputs []ScoreInput) ([]Score, error) {
	holeIDs := make(map[int]uint, len(ref.Holes))
	for _, hole := range ref.Holes {
		holeIDs[hole.Number] = hole.ID
	}

	scores := make([]Score, 0, len(inputs))
	for _, input := range inputs {
		holeID, ok := holeIDs[input.Number]
		if !ok {
			return nil, &UnknownHoleError{Number: input.Number}
		}
		scores = append(scores, Score{
			HoleID:     &holeID,
			HoleNumber: input.Number,
			Strokes:    input.Strokes,
		})
	}
	return scores, nil
}
