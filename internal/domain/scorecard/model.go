package scorecard

import "time"

type ScoreCard struct {
	ID        uint      `gorm:"primaryKey"`
	UserID    uint      `gorm:"not null;index"`
	LayoutID  uint      `gorm:"not null"`
	Date      time.Time `gorm:"not null"`
	Scores    []Score   `gorm:"foreignKey:ScoreCardID"`
	CourseID  uint      `gorm:"-"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Score is the stroke count for one hole. HoleID is cleared when the hole
// is deleted; HoleNumber keeps the score readable afterwards.
type Score struct {
	ID          uint  `gorm:"primaryKey"`
	ScoreCardID uint  `gorm:"not null;index"`
	HoleID      *uint `gorm:"index"`
	HoleNumber  int   `gorm:"not null"`
	Strokes     int   `gorm:"not null"`
}

// LayoutRef is the part of a layout a score card is validated against.
type LayoutRef struct {
	ID       uint
	CourseID uint
	Holes    []HoleRef
}

type HoleRef struct {
	ID     uint
	Number int
}

type ScoreInput struct {
	Number  int
	Strokes int
}

type CreateInput struct {
	LayoutID uint
	Date     time.Time
	Scores   []ScoreInput
}

type UpdateInput struct {
	Date   time.Time
	Scores []ScoreInput
}
