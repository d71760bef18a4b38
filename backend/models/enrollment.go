package models

import "gorm.io/gorm"

// Enrollment statuses
const (
	EnrollmentActive    = "active"
	EnrollmentCompleted = "completed"
	EnrollmentCancelled = "cancelled"
)

type Enrollment struct {
	gorm.Model
	UserID   uint   `gorm:"not null;uniqueIndex:idx_enrollment_user_course" json:"user"`
	CourseID uint   `gorm:"not null;uniqueIndex:idx_enrollment_user_course" json:"course"`
	Status   string `gorm:"default:active" json:"status"` // active, completed, cancelled
}

type UserProgress struct {
	gorm.Model
	UserID   uint `gorm:"not null;uniqueIndex:idx_progress_user_course_module" json:"user"`
	CourseID uint `gorm:"not null;uniqueIndex:idx_progress_user_course_module" json:"course"`
	ModuleID uint `gorm:"not null;uniqueIndex:idx_progress_user_course_module" json:"module"`
	Progress int  `gorm:"check:progress>=0 AND progress<=100" json:"progress"` // percent
}
