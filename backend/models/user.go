package models

import "gorm.io/gorm"

const (
	RoleUser  = "user"
	RoleStaff = "staff"
)

type User struct {
	gorm.Model
	Username     string `gorm:"unique;not null" json:"username"`
	Email        string `gorm:"unique" json:"email"`
	PasswordHash string `gorm:"not null" json:"-"`
	Role         string `gorm:"default:user" json:"role"` // user, staff
}

func (u *User) IsStaff() bool {
	return u.Role == RoleStaff
}
