package utils

import (
	"errors"
	"log"
	"time"

	"online_project/backend/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type seedMaterial struct {
	title   string
	mtype   string
	content string
}

type seedModule struct {
	title     string
	desc      string
	materials []seedMaterial
}

type seedCourse struct {
	title   string
	desc    string
	modules []seedModule
}

var starterCourses = []seedCourse{
	{
		title: "Основы программирования на Python",
		desc:  "Изучение Python с нуля",
		modules: []seedModule{
			{
				title: "Введение в Python",
				desc:  "Основы синтаксиса",
				materials: []seedMaterial{
					{"Что такое Python", models.MaterialText, "Python - это мощный язык..."},
					{"Установка Python", models.MaterialVideo, "Видео об установке"},
				},
			},
		},
	},
	{
		title: "Веб-разработка (HTML, CSS, JS)",
		desc:  "Основы фронтенда",
		modules: []seedModule{
			{
				title: "HTML Basics",
				desc:  "Введение в HTML",
				materials: []seedMaterial{
					{"Структура HTML", models.MaterialText, "HTML состоит из тегов..."},
				},
			},
		},
	},
}

// Seed creates the admin account and the starter catalog. Safe to run on every
// start: existing rows are left untouched.
func Seed(db *gorm.DB) error {
	var admin models.User
	err := db.Where("username = ?", "admin").First(&admin).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		hash, err := bcrypt.GenerateFromPassword([]byte("12345"), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		admin = models.User{
			Username:     "admin",
			Email:        "admin@example.com",
			PasswordHash: string(hash),
			Role:         models.RoleStaff,
		}
		if err := db.Create(&admin).Error; err != nil {
			return err
		}
		log.Println("Создан суперпользователь: admin")
	} else if err != nil {
		return err
	}

	for _, sc := range starterCourses {
		var count int64
		db.Model(&models.Course{}).Where("title = ?", sc.title).Count(&count)
		if count > 0 {
			continue
		}

		course := models.Course{
			Title:        sc.title,
			Description:  sc.desc,
			StartDate:    time.Now(),
			EndDate:      time.Now(),
			InstructorID: admin.ID,
		}
		if err := db.Create(&course).Error; err != nil {
			return err
		}

		var firstModule *models.Module
		for _, sm := range sc.modules {
			module := models.Module{
				CourseID:    course.ID,
				Title:       sm.title,
				Description: sm.desc,
			}
			if err := db.Create(&module).Error; err != nil {
				return err
			}
			if firstModule == nil {
				m := module
				firstModule = &m
			}
			for _, mat := range sm.materials {
				material := models.Material{
					ModuleID: module.ID,
					Title:    mat.title,
					Type:     mat.mtype,
					Content:  mat.content,
				}
				if err := db.Create(&material).Error; err != nil {
					return err
				}
			}
		}

		if err := db.Create(&models.Enrollment{
			UserID:   admin.ID,
			CourseID: course.ID,
			Status:   models.EnrollmentActive,
		}).Error; err != nil {
			return err
		}
		if firstModule != nil {
			if err := db.Create(&models.UserProgress{
				UserID:   admin.ID,
				CourseID: course.ID,
				ModuleID: firstModule.ID,
				Progress: 50,
			}).Error; err != nil {
				return err
			}
		}
	}

	return nil
}
