package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Survey is append-only: rows are created on completion of a survey run and
// never updated afterwards.
type Survey struct {
	gorm.Model
	UserID   uint              `gorm:"not null;index" json:"user"`
	Answers  datatypes.JSONMap `json:"answers"` // question id -> score
	CourseID *uint             `gorm:"index" json:"recommended_course"`
	Course   *Course           `gorm:"constraint:OnDelete:SET NULL" json:"-"`
}
