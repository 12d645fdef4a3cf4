// Package seed loads the sample data used for local development.
package seed

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"scorekeeper/internal/app"
	"scorekeeper/internal/config"
	coursedomain "scorekeeper/internal/domain/course"
	layoutdomain "scorekeeper/internal/domain/layout"
	scorecarddomain "scorekeeper/internal/domain/scorecard"
	userdomain "scorekeeper/internal/domain/user"
	"scorekeeper/pkg/logger"
)

var sampleCourse = coursedomain.CourseInput{
	Name:  "Sedgley Woods",
	City:  "Philadelphia",
	State: "PA",
	Lat:   39.9526,
	Lon:   75.1652,
}

var sampleLayout = layoutdomain.LayoutInput{
	Name: "1-9 Blue Front Nine",
	Holes: []layoutdomain.HoleInput{
		{Number: 1, Par: 3, Distance: 186},
		{Number: 2, Par: 3, Distance: 418},
		{Number: 3, Par: 3, Distance: 193},
		{Number: 4, Par: 3, Distance: 233},
		{Number: 5, Par: 3, Distance: 190},
		{Number: 6, Par: 3, Distance: 204},
		{Number: 7, Par: 3, Distance: 257},
		{Number: 8, Par: 3, Distance: 183},
		{Number: 9, Par: 3, Distance: 221},
	},
}

var sampleStrokes = []int{3, 3, 2, 3, 4, 3, 3, 3, 1}

// Result lists the ids created by Run.
type Result struct {
	CourseID    uint
	LayoutID    uint
	UserID      uint
	ScoreCardID uint
}

// ErrAlreadySeeded is returned when the sample course is already present.
var ErrAlreadySeeded = errors.New("sample data already present")

// Run creates the sample data in one transaction, so a failed run leaves
// nothing behind. The player signs in with password.
func Run(ctx context.Context, cfg config.Config, dbConn *gorm.DB, password string, log logger.Logger) (*Result, error) {
	var result *Result
	err := dbConn.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		result, err = run(ctx, app.NewServices(cfg, tx), password, log)
		return err
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func run(ctx context.Context, services app.Services, password string, log logger.Logger) (*Result, error) {
	course, err := services.Courses.CreateCourse(ctx, sampleCourse)
	if err != nil {
		if errors.Is(err, coursedomain.ErrCourseExists) {
			return nil, ErrAlreadySeeded
		}
		return nil, fmt.Errorf("seed course: %w", err)
	}
	log.Info("seed: created course", "course_id", course.ID, "name", course.Name)

	layout, err := services.Layouts.CreateLayout(ctx, course.ID, sampleLayout)
	if err != nil {
		return nil, fmt.Errorf("seed layout: %w", err)
	}
	log.Info("seed: created layout", "layout_id", layout.ID, "holes", len(layout.Holes))

	player, err := services.Users.Register(ctx, userdomain.RegisterInput{
		FirstName: "Sean",
		LastName:  "Messerly",
		Email:     "sean@example.com",
		Username:  "sean",
		Password:  password,
	})
	if err != nil {
		return nil, fmt.Errorf("seed user: %w", err)
	}
	log.Info("seed: created user", "user_id", player.ID, "username", player.Username)

	scores := make([]scorecarddomain.ScoreInput, 0, len(sampleStrokes))
	for i, strokes := range sampleStrokes {
		scores = append(scores, scorecarddomain.ScoreInput{Number: i + 1, Strokes: strokes})
	}
	card, err := services.ScoreCards.CreateScoreCard(ctx, player.ID, scorecarddomain.CreateInput{
		LayoutID: layout.ID,
		Date:     time.Date(2021, time.September, 1, 8, 0, 0, 0, time.UTC),
		Scores:   scores,
	})
	if err != nil {
		return nil, fmt.Errorf("seed score card: %w", err)
	}
	log.Info("seed: created score card", "score_card_id", card.ID)

	return &Result{
		CourseID:    course.ID,
		LayoutID:    layout.ID,
		UserID:      player.ID,
		ScoreCardID: card.ID,
	}, nil
}
