package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/deptlibrary/backend/config"
	"github.com/deptlibrary/backend/handlers"
	"github.com/deptlibrary/backend/middleware"
	"github.com/deptlibrary/backend/service"
	"github.com/deptlibrary/backend/store"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()
	config.ValidateEnv()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("config:", err)
	}

	ctx := context.Background()
	db, err := store.NewMongoDB(ctx, cfg.MongoURI, cfg.DBName)
	if err != nil {
		log.Fatal("mongodb:", err)
	}
	defer func() {
		if err := db.Disconnect(context.Background()); err != nil {
			log.Println("mongodb disconnect:", err)
		}
	}()
	if err := db.EnsureIndexes(ctx); err != nil {
		log.Fatal("indexes:", err)
	}

	var storage service.ObjectStorage
	if cfg.S3Bucket != "" {
		s3Storage, err := service.NewS3Storage(ctx, cfg.S3Bucket, cfg.S3Region, cfg.S3AccessKeyID, cfg.S3SecretKey)
		if err != nil {
			log.Fatal("s3:", err)
		}
		storage = s3Storage
	} else {
		localStorage, err := service.NewLocalStorage(cfg.UploadDir)
		if err != nil {
			log.Fatal("upload dir:", err)
		}
		storage = localStorage
	}

	var mailer *service.Mailer
	if cfg.SMTPHost != "" {
		mailer = service.NewMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, cfg.SMTPFrom, cfg.ResetURLBase)
	} else {
		log.Println("warning: SMTP_HOST not set; reset tokens will be logged instead of mailed")
	}

	circulation := &service.Circulation{Store: db}

	authHandler := &handlers.AuthHandler{DB: db, JWTSecret: cfg.JWTSecret, Mailer: mailer}
	profileHandler := &handlers.ProfileHandler{DB: db, Storage: storage, MaxBytes: cfg.MaxUploadMB * 1024 * 1024}
	filesHandler := &handlers.FilesHandler{Storage: storage}
	adminHandler := &handlers.AdminHandler{DB: db}
	booksHandler := &handlers.BooksHandler{DB: db}
	circulationHandler := &handlers.CirculationHandler{Service: circulation}
	broadcastsHandler := &handlers.BroadcastsHandler{DB: db}
	feedbackHandler := &handlers.FeedbackHandler{DB: db}
	forumHandler := &handlers.ForumHandler{DB: db}
	wishlistHandler := &handlers.WishlistHandler{DB: db}

	r := chi.NewRouter()
	r.Use(middleware.CORS())
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.RealIP)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/signup", authHandler.Signup)
		r.Post("/auth/login", authHandler.Login)
		r.Post("/auth/forgot-password", authHandler.ForgotPassword)
		r.Post("/auth/reset-password/{token}", authHandler.ResetPassword)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWTSecret))

			r.Get("/auth/profile/{id}", profileHandler.Get)
			r.Put("/auth/profile/{id}", profileHandler.Update)
			r.Put("/auth/profile/{id}/image", profileHandler.UploadImage)
			r.Put("/auth/change-password/{id}", profileHandler.ChangePassword)

			r.Get("/files/*", filesHandler.Get)
			r.Get("/broadcasts", broadcastsHandler.List)

			r.Route("/faculty", func(r chi.Router) {
				r.Get("/dashboard", circulationHandler.Dashboard)
				r.Get("/books", booksHandler.List)
				r.Get("/books/{id}", booksHandler.Get)
				r.Put("/books/issue/{id}", circulationHandler.Issue)
				r.Put("/books/return/{id}", circulationHandler.Return)
				r.Get("/feedbacks", feedbackHandler.ListOwn)
				r.Post("/feedbacks", feedbackHandler.Create)
				r.Get("/wishlist", wishlistHandler.List)
				r.Post("/wishlist", wishlistHandler.Create)
				r.Delete("/wishlist/{id}", wishlistHandler.Delete)
				r.Get("/forum", forumHandler.List)
				r.Post("/forum", forumHandler.Create)
				r.Post("/forum/{id}/replies", forumHandler.AddReply)
			})

			// Admin routes
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireAdmin)
				r.Post("/broadcasts", broadcastsHandler.Create)
				r.Route("/admin", func(r chi.Router) {
					r.Get("/dashboard/stats", adminHandler.Stats)
					r.Get("/faculty", adminHandler.ListFaculty)
					r.Post("/faculty", adminHandler.ImportFaculty)
					r.Delete("/faculty/{id}", adminHandler.DeleteFaculty)
					r.Put("/faculty/{id}/deactivate", adminHandler.DeactivateFaculty)
					r.Put("/faculty/{id}/activate", adminHandler.ActivateFaculty)
					r.Get("/books", booksHandler.List)
					r.Post("/books", booksHandler.Create)
					r.Put("/books/{id}", booksHandler.Update)
					r.Delete("/books/{id}", booksHandler.Delete)
					r.Get("/feedbacks", feedbackHandler.ListAll)
					r.Put("/feedbacks/{id}", feedbackHandler.Review)
					r.Get("/settings/working-hours", adminHandler.GetWorkingHours)
					r.Post("/settings/working-hours", adminHandler.SetWorkingHours)
					r.Get("/settings/holidays", adminHandler.ListHolidays)
					r.Post("/settings/holidays", adminHandler.CreateHoliday)
					r.Delete("/settings/holidays/{id}", adminHandler.DeleteHoliday)
				})
			})
		})
	})

	server := &http.Server{Addr: ":" + cfg.Port, Handler: r}
	go func() {
		log.Println("server listening on :" + cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal(err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Println("shutdown:", err)
	}
}
