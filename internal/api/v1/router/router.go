package router

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"strings"

	"learnhub/internal/api/v1/handler"
	"learnhub/internal/config"
	"learnhub/internal/middleware"
	"learnhub/internal/pgmq"
	"learnhub/internal/pubsub"
	"learnhub/internal/repository"
	"learnhub/internal/service"
	"learnhub/internal/storage"

	_ "learnhub/docs"

	"github.com/go-playground/validator/v10"
	"github.com/rs/cors"
	"github.com/rs/zerolog"
	"github.com/swaggo/swag"
	"google.golang.org/api/option"
)

// Server holds the HTTP handler and the resources it owns.
type Server struct {
	Handler   http.Handler
	DB        *sql.DB
	publisher *pubsub.PubSubPublisher
}

// Close releases the DB pool and the Pub/Sub client.
func (s *Server) Close() {
	if s.publisher != nil {
		s.publisher.Close()
	}
	s.DB.Close()
}

// New wires repositories, services and handlers. jwtSecret is the resolved
// signing secret.
func New(ctx context.Context, cfg *config.Config, jwtSecret string, logger zerolog.Logger) (*Server, error) {
	logger.Info().Str("environment", cfg.Environment).Msg("Router initializing")

	db, err := repository.Open(ctx, cfg.DSN())
	if err != nil {
		return nil, err
	}
	logger.Info().Msg("Database connection successful")
	srv := &Server{DB: db}

	s3Client, err := storage.NewS3Client(ctx, storage.S3Options{
		Endpoint:  cfg.S3URL,
		Region:    cfg.S3Region,
		AccessKey: cfg.S3AccessKey,
		SecretKey: cfg.S3SecretKey,
	})
	if err != nil {
		db.Close()
		return nil, err
	}
	publicURL := cfg.S3PublicURL
	if publicURL == "" {
		publicURL = cfg.S3URL
	}
	uploader := storage.NewS3Uploader(s3Client, cfg.S3Bucket, publicURL, logger)

	var publisher pubsub.Publisher
	if cfg.EventsEnabled() {
		var opts []option.ClientOption
		if cfg.GCPCredentialsFile != "" {
			opts = append(opts, option.WithCredentialsFile(cfg.GCPCredentialsFile))
		}
		p, err := pubsub.NewPublisher(ctx, cfg.GCPProjectID, opts...)
		if err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to create Pub/Sub publisher: %w", err)
		}
		srv.publisher = p
		publisher = p
	} else {
		logger.Warn().Msg("Course events disabled: GCP_PROJECT_ID or PUBSUB_COURSE_EVENT_TOPIC not set")
	}

	validate := validator.New(validator.WithRequiredStructEnabled())

	courseRepo := repository.NewCourseRepo(db, logger)
	userRepo := repository.NewUserRepo(db)
	categoryRepo := repository.NewCategoryRepo(db)
	sectionRepo := repository.NewSectionRepo(db)
	ratingRepo := repository.NewRatingRepo(db)

	courseSvc := service.NewCourseService(service.CourseDeps{
		Courses:    courseRepo,
		Users:      userRepo,
		Categories: categoryRepo,
		Sections:   sectionRepo,
		Ratings:    ratingRepo,
		Images:     uploader,
		Folder:     cfg.FolderName,
		Publisher:  publisher,
		EventTopic: cfg.PubSubCourseEventTopic,
		Repairs:    service.NewRepairScheduler(pgmq.New(db), cfg.RepairQueueName),
	}, logger)
	catalogSvc := service.NewCatalogService(courseRepo, categoryRepo, userRepo, logger)

	courseHandler := handler.NewCourseHandler(courseSvc, validate, logger)
	catalogHandler := handler.NewCatalogHandler(catalogSvc, validate, logger)

	authMiddleware := middleware.AuthMiddleware(jwtSecret, logger)

	srv.Handler = Routes(cfg, logger, func(mux *http.ServeMux) {
		courseHandler.RegisterRoutes(mux, authMiddleware)
		catalogHandler.RegisterRoutes(mux)
	})
	return srv, nil
}

// Routes mounts the API under /v1 with the documentation, redirect, CORS and
// logging layers around it.
func Routes(cfg *config.Config, logger zerolog.Logger, register func(*http.ServeMux)) http.Handler {
	apiV1Mux := http.NewServeMux()
	register(apiV1Mux)

	mux := http.NewServeMux()
	mux.Handle("/v1/", http.StripPrefix("/v1", apiV1Mux))

	mux.HandleFunc("GET /swagger/doc.json", func(w http.ResponseWriter, r *http.Request) {
		doc, err := swag.ReadDoc()
		if err != nil {
			logger.Error().Err(err).Msg("Failed to read API documentation")
			http.Error(w, "documentation unavailable", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(doc))
	})

	// Redirect /api/* to /v1/* for backward compatibility
	mux.HandleFunc("/api/", func(w http.ResponseWriter, r *http.Request) {
		target := "/v1/" + strings.TrimPrefix(r.URL.Path, "/api/")
		if r.URL.RawQuery != "" {
			target += "?" + r.URL.RawQuery
		}
		http.Redirect(w, r, target, http.StatusPermanentRedirect)
	})

	c := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORSAllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})

	return middleware.LoggerMiddleware(logger)(c.Handler(mux))
}
