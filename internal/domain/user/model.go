package user

import "time"

type User struct {
	ID           uint   `gorm:"primaryKey"`
	FirstName    string `gorm:"not null"`
	LastName     string `gorm:"not null"`
	Email        string `gorm:"not null;uniqueIndex:users_email_key"`
	Username     string `gorm:"not null;uniqueIndex:users_username_key"`
	PasswordHash string `gorm:"not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type RegisterInput struct {
	FirstName string
	LastName  string
	Email     string
	Username  string
	Password  string
}

type UpdateInput struct {
	FirstName string
	LastName  string
	Email     string
}
