package layout

import "time"

type Layout struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"not null"`
	CourseID  uint   `gorm:"not null;index"`
	Holes     []Hole `gorm:"foreignKey:LayoutID"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Hole struct {
	ID       uint `gorm:"primaryKey"`
	Number   int  `gorm:"not null"`
	Par      int  `gorm:"not null"`
	Distance int  `gorm:"not null"`
	LayoutID uint `gorm:"not null;index"`
}

type HoleInput struct {
	Number   int
	Par      int
	Distance int
}

type LayoutInput struct {
	Name  string
	Holes []HoleInput
}
