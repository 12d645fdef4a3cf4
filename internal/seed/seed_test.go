package seed_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scorekeeper/internal/app"
	"scorekeeper/internal/config"
	userdomain "scorekeeper/internal/domain/user"
	"scorekeeper/internal/seed"
	"scorekeeper/internal/testutil"
	"scorekeeper/pkg/logger"
)

func TestRunCreatesSampleRound(t *testing.T) {
	ctx := context.Background()
	cfg := config.Default()
	dbConn := testutil.OpenDB(t)

	result, err := seed.Run(ctx, cfg, dbConn, "disc-golf", logger.NewNop())
	require.NoError(t, err)

	services := app.NewServices(cfg, dbConn)
	layout, err := services.Layouts.GetLayout(ctx, result.CourseID, result.LayoutID)
	require.NoError(t, err)
	assert.Len(t, layout.Holes, 9)

	card, err := services.ScoreCards.GetScoreCard(ctx, result.UserID, result.ScoreCardID)
	require.NoError(t, err)
	assert.Equal(t, result.CourseID, card.CourseID)
	assert.Len(t, card.Scores, 9)

	_, err = services.Users.Authenticate(ctx, "sean@example.com", "disc-golf")
	assert.NoError(t, err)

	_, err = seed.Run(ctx, cfg, dbConn, "disc-golf", logger.NewNop())
	assert.ErrorIs(t, err, seed.ErrAlreadySeeded)
}

func TestRunLeavesNothingBehindOnFailure(t *testing.T) {
	ctx := context.Background()
	cfg := config.Default()
	dbConn := testutil.OpenDB(t)
	services := app.NewServices(cfg, dbConn)

	squatter, err := services.Users.Register(ctx, userdomain.RegisterInput{
		FirstName: "Other",
		LastName:  "Player",
		Email:     "other@example.com",
		Username:  "sean",
		Password:  "disc-golf",
	})
	require.NoError(t, err)

	_, err = seed.Run(ctx, cfg, dbConn, "disc-golf", logger.NewNop())
	require.ErrorIs(t, err, userdomain.ErrUsernameTaken)

	courses, err := services.Courses.ListCourses(ctx)
	require.NoError(t, err)
	assert.Empty(t, courses, "the course from the failed run is rolled back")

	require.NoError(t, services.Users.DeleteUser(ctx, squatter.ID))

	result, err := seed.Run(ctx, cfg, dbConn, "disc-golf", logger.NewNop())
	require.NoError(t, err)
	assert.NotZero(t, result.ScoreCardID)
}
