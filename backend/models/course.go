package models

import (
	"time"

	"gorm.io/gorm"
)

type Course struct {
	gorm.Model
	Title        string    `gorm:"unique;not null" json:"title"`
	Description  string    `json:"description"`
	StartDate    time.Time `json:"start_date"`
	EndDate      time.Time `json:"end_date"`
	InstructorID uint      `json:"instructor"`
	Modules      []Module  `gorm:"constraint:OnDelete:CASCADE" json:"modules,omitempty"`
}

type Module struct {
	gorm.Model
	CourseID    uint       `gorm:"not null;index" json:"course"`
	Title       string     `gorm:"not null" json:"title"`
	Description string     `json:"description"`
	Materials   []Material `gorm:"constraint:OnDelete:CASCADE" json:"materials,omitempty"`
}

// Material types
const (
	MaterialVideo = "video"
	MaterialText  = "text"
	MaterialPDF   = "pdf"
)

type Material struct {
	gorm.Model
	ModuleID uint   `gorm:"not null;index" json:"module"`
	Title    string `gorm:"not null" json:"title"`
	Type     string `gorm:"not null" json:"type"` // video, text, pdf
	Content  string `json:"content"`              // inline text or file/URL reference
}
