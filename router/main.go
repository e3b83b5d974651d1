package router

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/sabyskool/api/config"
	"github.com/sabyskool/api/database"
	"github.com/sabyskool/api/handlers"
	aula_handlers "github.com/sabyskool/api/handlers/aula"
	auth_handlers "github.com/sabyskool/api/handlers/auth"
	classroom_handlers "github.com/sabyskool/api/handlers/classroom"
	community_handlers "github.com/sabyskool/api/handlers/community"
	exam_handlers "github.com/sabyskool/api/handlers/exam"
	forum_handlers "github.com/sabyskool/api/handlers/forum"
	professor_handlers "github.com/sabyskool/api/handlers/professor"
	"github.com/sabyskool/api/services"
	"github.com/sabyskool/api/services/openai"
	"github.com/sabyskool/api/services/storage"
	"github.com/sabyskool/api/utils/auth"
	"github.com/sabyskool/api/utils/cache"
	"github.com/sabyskool/api/utils/middleware"
)

// SetupRoutes wires services, middleware and handlers onto the app
func SetupRoutes(app *fiber.App, store database.Storage, env *config.EnvironmentVariable) {
	if env.JWT_SECRET == "" {
		log.Fatal("JWT_SECRET environment variable is not set")
	}

	jwtIssuer := env.JWT_ISSUER
	if jwtIssuer == "" {
		jwtIssuer = "sabyskool-api"
	}

	jwtManager := auth.NewJWTManager(auth.JWTConfig{
		Secret:        env.JWT_SECRET,
		Expiry:        24 * time.Hour,
		RefreshExpiry: 7 * 24 * time.Hour,
		Issuer:        jwtIssuer,
	})

	db := store.GetDB()

	// Redis backs both brute force protection and the realtime message feed.
	// Either degrades gracefully when Redis is unreachable.
	redisURL := env.REDIS_URL
	if redisURL == "" {
		redisURL = "redis://localhost:6379/0"
	}
	redisCache, err := cache.NewRedisCache(redisURL)
	if err != nil {
		log.Printf("Warning: Failed to connect to Redis: %v. Brute force protection and realtime feed will be disabled.", err)
	}

	var bruteForceProtection *middleware.BruteForceProtection
	var feed *services.MessageFeed
	if redisCache != nil {
		bruteForceProtection = middleware.NewBruteForceProtection(redisCache)
		feed = services.NewMessageFeed(redisCache)
	}

	authMiddleware := middleware.NewAuthMiddleware(jwtManager, db)

	// Domain services
	contentService := services.NewContentService(env.DEEPSEEK_API_KEY, env.OPENAI_API_KEY)
	tutorService := services.NewTutorService(db, env.OPENAI_API_KEY)
	if feed != nil {
		tutorService.SetFeed(feed)
	}
	aulaService := services.NewAulaService(db)
	communityService := services.NewCommunityService(db)
	examService := services.NewExamService(db)

	var pipeline *services.LessonPipelineService
	mediaStore, err := storage.NewMediaStore(storage.Config{
		AccessKey: env.MEDIA_ACCESS_KEY,
		SecretKey: env.MEDIA_SECRET_KEY,
		Bucket:    env.MEDIA_BUCKET,
		Region:    env.MEDIA_REGION,
		Endpoint:  env.MEDIA_ENDPOINT,
		CDNURL:    env.MEDIA_CDN_URL,
	})
	if err != nil {
		log.Printf("Warning: media store not configured: %v. Lesson processing will be disabled.", err)
	} else {
		transcriber := openai.NewClient(openai.Config{
			APIKey:  env.GROQ_API_KEY,
			BaseURL: openai.GroqBaseURL,
			Timeout: openai.DefaultTranscriptionTimeout,
		})
		pipeline = services.NewLessonPipelineService(db, mediaStore, transcriber, contentService)
	}

	// Handlers
	authHandler := auth_handlers.NewAuthHandler(db, jwtManager, bruteForceProtection)
	communityHandler := community_handlers.NewCommunityHandler(communityService)
	professorHandler := professor_handlers.NewProfessorHandler(db)
	aulaHandler := aula_handlers.NewAulaHandler(db, aulaService, contentService)
	classroomHandler := classroom_handlers.NewClassroomHandler(db, pipeline)
	forumHandler := forum_handlers.NewForumHandler(db, tutorService, feed)
	examHandler := exam_handlers.NewExamHandler(db, examService)

	// Health check endpoint (public)
	app.Get("/ping", handlers.HandleCheckHealth(store))

	// API v1 group
	api := app.Group("/api/v1")

	// Auth routes (public)
	authGroup := api.Group("/auth")
	authGroup.Post("/register", authHandler.Register)
	if bruteForceProtection != nil {
		authGroup.Post("/login", bruteForceProtection.CheckLocked(), authHandler.Login)
	} else {
		authGroup.Post("/login", authHandler.Login)
	}
	authGroup.Post("/refresh", authHandler.RefreshToken)

	// Protected auth routes
	authGroup.Post("/logout", authMiddleware.Required(), authHandler.Logout)
	authGroup.Get("/me", authMiddleware.Required(), authHandler.Me)

	// Community routes (protected)
	communities := api.Group("/communities", authMiddleware.Required())
	communities.Post("/", middleware.RequireCreator(), communityHandler.Create)
	communities.Get("/:id", communityHandler.Get)
	communities.Post("/:id/join", communityHandler.Join)
	communities.Get("/:id/members", communityHandler.ListMembers)

	// Professor routes (creator-gated mutations)
	professors := api.Group("/professors", authMiddleware.Required())
	professors.Get("/", professorHandler.List)
	professors.Get("/:id", professorHandler.Get)
	professors.Post("/", middleware.RequireCreator(), professorHandler.Create)
	professors.Put("/:id", middleware.RequireCreator(), professorHandler.Update)
	professors.Delete("/:id", middleware.RequireCreator(), professorHandler.Delete)

	// Aula routes
	aulas := api.Group("/aulas", authMiddleware.Required())
	aulas.Get("/", aulaHandler.List)
	aulas.Get("/:id", aulaHandler.Get)
	aulas.Post("/", middleware.RequireCreator(), aulaHandler.Create)
	aulas.Put("/:id", middleware.RequireCreator(), aulaHandler.Update)
	aulas.Delete("/:id", middleware.RequireCreator(), aulaHandler.Delete)
	aulas.Put("/:id/professor", middleware.RequireCreator(), aulaHandler.AssignProfessor)
	aulas.Post("/generate-content", middleware.RequireCreator(), aulaHandler.GenerateContent)

	// Forum routes (nested under aulas)
	aulas.Get("/:id/messages", forumHandler.ListMessages)
	aulas.Post("/:id/messages", forumHandler.SendMessage)
	aulas.Get("/:id/messages/stream", forumHandler.StreamMessages)

	// Exam routes (nested under aulas)
	aulas.Put("/:id/exam", examHandler.Submit)
	aulas.Get("/:id/exam", examHandler.Get)

	// Classroom routes: course modules and the video-lesson pipeline
	modules := api.Group("/modules", authMiddleware.Required())
	modules.Get("/", classroomHandler.ListModules)
	modules.Post("/", middleware.RequireCreator(), classroomHandler.CreateModule)
	modules.Put("/:id", middleware.RequireCreator(), classroomHandler.UpdateModule)
	modules.Delete("/:id", middleware.RequireCreator(), classroomHandler.DeleteModule)

	lessons := api.Group("/lessons", authMiddleware.Required())
	lessons.Post("/process", middleware.RequireCreator(), classroomHandler.ProcessLesson)
	lessons.Get("/:id", classroomHandler.GetLesson)
	lessons.Get("/:id/quiz", classroomHandler.GetLessonQuiz)
}
