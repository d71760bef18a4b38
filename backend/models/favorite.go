package models

import "gorm.io/gorm"

// FavoriteCourse marks a course by name, not by foreign key: a favorite may
// outlive the course row and is also set before the course exists.
type FavoriteCourse struct {
	gorm.Model
	UserID     uint   `gorm:"not null;uniqueIndex:idx_favorite_user_course" json:"user"`
	CourseName string `gorm:"not null;uniqueIndex:idx_favorite_user_course" json:"course_name"`
	Progress   int    `gorm:"default:0;check:progress>=0 AND progress<=100" json:"progress"`
}
