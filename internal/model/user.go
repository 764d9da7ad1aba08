package model

import (
	"time"
)

type UserRole string

const (
	Student     UserRole = "student"
	Teacher     UserRole = "teacher"
	Institution UserRole = "institution"
	Admin       UserRole = "admin"
)

// swagger:model User
type User struct {
	BaseModel
	FullName    string    `gorm:"size:100;not null" json:"fullName"`
	Email       string    `gorm:"size:100;unique;not null" json:"email"`
	Password    string    `gorm:"size:100;not null" json:"-"`
	Role        UserRole  `gorm:"size:20;default:'student'" json:"role"`
	Image       string    `gorm:"size:255" json:"image,omitempty"`
	Institution string    `gorm:"size:255" json:"institution,omitempty"`
	Subject     string    `gorm:"size:100" json:"subject,omitempty"`
	Bio         string    `gorm:"type:text" json:"bio,omitempty"`
	Disabled    bool      `gorm:"default:false" json:"disabled"`
	LastLogin   time.Time `json:"lastLogin"`
}

func (User) TableName() string {
	return "users"
}
