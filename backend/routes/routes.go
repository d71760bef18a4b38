package routes

import (
	"online_project/backend/config"
	"online_project/backend/controllers"
	"online_project/backend/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"gorm.io/gorm"
)

func SetupRoutes(app *fiber.App, db *gorm.DB, cfg *config.Config, sessions *session.Store) {
	authRequired := middleware.AuthMiddleware(db, cfg)
	staffOnly := middleware.StaffMiddleware()

	authController := controllers.NewAuthController(db, cfg)
	usersController := controllers.NewUsersController(db, cfg)
	coursesController := controllers.NewCoursesController(db, cfg)
	modulesController := controllers.NewModulesController(db, cfg)
	materialsController := controllers.NewMaterialsController(db, cfg)
	enrollmentsController := controllers.NewEnrollmentsController(db, cfg)
	progressController := controllers.NewProgressController(db, cfg)
	favoritesController := controllers.NewFavoritesController(db, cfg)
	surveysController := controllers.NewSurveysController(db, cfg, sessions)
	quizController := controllers.NewQuizController(db, cfg)
	statsController := controllers.NewStatsController(db, cfg)

	// Основные страницы
	overview := func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"name":    "Online Learning Platform",
			"about":   "Каталог курсов, запись, прогресс, тесты и подбор курса по опросу",
			"api":     "/api",
			"courses": "/courses",
		})
	}
	app.Get("/", overview)
	app.Get("/about", overview)
	app.Post("/join", authController.Register)
	app.Post("/login", authController.Login)
	app.Post("/logout", authRequired, authController.Logout)
	app.Get("/profile", authRequired, authController.GetProfile)
	app.Put("/profile", authRequired, authController.UpdateProfile)
	app.Put("/settings", authRequired, authController.ChangePassword)

	// Курсы и связанные функции
	app.Get("/courses", coursesController.ListCourses) // доступно анонимно
	app.Post("/course/create", authRequired, staffOnly, coursesController.CreateCourse)
	app.Put("/course/:id/edit", authRequired, staffOnly, coursesController.UpdateCourse)
	app.Delete("/course/:id/delete", authRequired, staffOnly, coursesController.DeleteCourse)
	app.Get("/course/:name", authRequired, coursesController.CourseDetail)
	app.Get("/course/:name/test", authRequired, quizController.GetTest)
	app.Post("/course/:name/test", authRequired, quizController.SubmitTest)
	app.Get("/favorites", authRequired, favoritesController.FavoritesPage)
	app.Post("/toggle_favorite", authRequired, favoritesController.ToggleFavorite)
	app.Get("/survey/:track", authRequired, surveysController.StartSurvey)
	app.Post("/survey/:track", authRequired, surveysController.SubmitSurveyAnswer)

	// Модули
	app.Get("/modules", authRequired, modulesController.ListModules)
	app.Post("/modules/create", authRequired, staffOnly, modulesController.CreateModule)
	app.Put("/modules/:id/edit", authRequired, staffOnly, modulesController.UpdateModule)
	app.Delete("/modules/:id/delete", authRequired, staffOnly, modulesController.DeleteModule)

	// Материалы
	app.Get("/materials", authRequired, materialsController.ListMaterials)
	app.Post("/materials/create", authRequired, staffOnly, materialsController.CreateMaterial)
	app.Put("/materials/:id/edit", authRequired, staffOnly, materialsController.UpdateMaterial)
	app.Delete("/materials/:id/delete", authRequired, staffOnly, materialsController.DeleteMaterial)

	// Админ
	app.Get("/users", authRequired, staffOnly, usersController.ListUsers)
	app.Get("/admin/stats", authRequired, staffOnly, statsController.AdminStats)

	// REST API
	auth := app.Group("/api/auth")
	auth.Post("/register", authController.Register)
	auth.Post("/login", authController.Login)
	auth.Post("/logout", authRequired, authController.Logout)

	users := app.Group("/api/users")
	users.Get("/", authRequired, staffOnly, usersController.ListUsers)
	users.Post("/", usersController.CreateUser)
	users.Get("/:id", authRequired, usersController.GetUser)
	users.Put("/:id", authRequired, usersController.UpdateUser)
	users.Delete("/:id", authRequired, usersController.DeleteUser)

	courses := app.Group("/api/courses")
	courses.Get("/", coursesController.ListCourses) // доступно анонимно
	courses.Post("/", authRequired, staffOnly, coursesController.CreateCourse)
	courses.Get("/:id", authRequired, coursesController.GetCourse)
	courses.Put("/:id", authRequired, staffOnly, coursesController.UpdateCourse)
	courses.Delete("/:id", authRequired, staffOnly, coursesController.DeleteCourse)

	modules := app.Group("/api/modules", authRequired)
	modules.Get("/", modulesController.ListModules)
	modules.Post("/", staffOnly, modulesController.CreateModule)
	modules.Get("/:id", modulesController.GetModule)
	modules.Put("/:id", staffOnly, modulesController.UpdateModule)
	modules.Delete("/:id", staffOnly, modulesController.DeleteModule)

	materials := app.Group("/api/materials", authRequired)
	materials.Get("/", materialsController.ListMaterials)
	materials.Post("/", staffOnly, materialsController.CreateMaterial)
	materials.Get("/:id", materialsController.GetMaterial)
	materials.Put("/:id", staffOnly, materialsController.UpdateMaterial)
	materials.Delete("/:id", staffOnly, materialsController.DeleteMaterial)

	enrollments := app.Group("/api/enrollments", authRequired)
	enrollments.Get("/", enrollmentsController.ListEnrollments)
	enrollments.Post("/", enrollmentsController.CreateEnrollment)
	enrollments.Get("/:id", enrollmentsController.GetEnrollment)
	enrollments.Put("/:id", enrollmentsController.UpdateEnrollment)
	enrollments.Delete("/:id", enrollmentsController.DeleteEnrollment)

	progress := app.Group("/api/progress", authRequired)
	progress.Get("/", progressController.ListProgress)
	progress.Post("/", progressController.CreateProgress)
	progress.Get("/:id", progressController.GetProgress)
	progress.Put("/:id", progressController.UpdateProgress)
	progress.Delete("/:id", progressController.DeleteProgress)

	favorites := app.Group("/api/favorites", authRequired)
	favorites.Get("/", favoritesController.ListFavorites)
	favorites.Post("/", favoritesController.CreateFavorite)
	favorites.Get("/:id", favoritesController.GetFavorite)
	favorites.Put("/:id", favoritesController.UpdateFavorite)
	favorites.Delete("/:id", favoritesController.DeleteFavorite)

	surveys := app.Group("/api/surveys", authRequired)
	surveys.Get("/", surveysController.ListSurveys)
	surveys.Post("/", surveysController.CreateSurvey)
	surveys.Get("/:id", surveysController.GetSurvey)
	surveys.Put("/:id", surveysController.UpdateSurvey) // append-only: всегда 405
	surveys.Delete("/:id", surveysController.DeleteSurvey)
}
