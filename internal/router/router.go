package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/quizforge/quizforge-backend/internal/config"
	"github.com/quizforge/quizforge-backend/internal/handler"
	"github.com/quizforge/quizforge-backend/internal/middleware"
	"github.com/quizforge/quizforge-backend/internal/response"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Category   *handler.CategoryHandler
	Quiz       *handler.QuizHandler
	Question   *handler.QuestionHandler
	Submission *handler.SubmissionHandler
}

// SetupRouter configures all Gin route groups with appropriate middlewares.
func SetupRouter(handlers *Handlers, cfg *config.Config) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.Default()

	// ─── CORS ──────────────────────────────────────────────────────────
	// If AllowedOrigins is set in config, restrict to that list;
	// otherwise allow all (*) so dev works without extra config.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	// Apply request ID middleware globally so every response includes metadata.
	router.Use(response.RequestIDMiddleware())

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"status": "ok"})
	})

	// ─── 1. Authenticated Group ────────────────────────────────────────
	api := router.Group("/api/v1")
	api.Use(middleware.RequireAuth(cfg.JWTSecret))
	{
		api.GET("/categories", handlers.Category.ListCategories)
		api.GET("/quizzes", handlers.Quiz.ListQuizzes)
		api.GET("/quizzes/:quiz_id", handlers.Quiz.GetQuiz)

		api.POST("/submissions", handlers.Submission.SubmitQuiz)
		api.GET("/submissions", handlers.Submission.ListSubmissions)
		api.GET("/submissions/:submission_id", handlers.Submission.GetSubmission)
	}

	// ─── 2. Admin Group ────────────────────────────────────────────────
	adminAPI := router.Group("/api/v1/admin")
	adminAPI.Use(middleware.RequireAuth(cfg.JWTSecret), middleware.RequireAdmin())
	{
		adminAPI.POST("/categories", handlers.Category.CreateCategory)
		adminAPI.PATCH("/categories/:category_id", handlers.Category.UpdateCategory)
		adminAPI.DELETE("/categories/:category_id", handlers.Category.DeleteCategory)

		adminAPI.POST("/quizzes", handlers.Quiz.CreateQuiz)
		adminAPI.PATCH("/quizzes/:quiz_id", handlers.Quiz.UpdateQuiz)
		adminAPI.DELETE("/quizzes/:quiz_id", handlers.Quiz.DeleteQuiz)
		adminAPI.GET("/quizzes/:quiz_id/statistics", handlers.Quiz.GetQuizStats)

		adminAPI.POST("/quizzes/:quiz_id/questions", handlers.Question.AddQuestion)
		adminAPI.PATCH("/questions/:question_id", handlers.Question.UpdateQuestion)
		adminAPI.DELETE("/questions/:question_id", handlers.Question.DeleteQuestion)
	}

	return router
}
