package course

import "time"

type Location struct {
	ID    uint    `gorm:"primaryKey"`
	City  string  `gorm:"not null"`
	State string  `gorm:"not null"`
	Lat   float64 `gorm:"not null"`
	Lon   float64 `gorm:"not null"`
}

type Course struct {
	ID         uint     `gorm:"primaryKey"`
	Name       string   `gorm:"not null"`
	LocationID uint     `gorm:"not null"`
	Location   Location `gorm:"foreignKey:LocationID"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// CourseInput carries the fields accepted by create and update.
type CourseInput struct {
	Name  string
	City  string
	State string
	Lat   float64
	Lon   float64
}
