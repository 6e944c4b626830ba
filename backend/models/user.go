package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	RoleStudent    = "student"
	RoleInstructor = "instructor"
	RoleAdmin      = "admin"
)

type User struct {
	gorm.Model
	Username     string `json:"username" gorm:"unique;not null"`
	Email        string `json:"email" gorm:"unique;not null"`
	PasswordHash string `json:"-" gorm:"not null"`
	Role         string `json:"role" gorm:"default:student"` // student, instructor, admin
}

type LoginHistory struct {
	gorm.Model
	UserID    uint      `json:"user_id" gorm:"index"`
	LoginTime time.Time `json:"login_time"`
}
