package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/dpetrovv/blog-api/internal/auth"
	"github.com/dpetrovv/blog-api/internal/config"
	"github.com/dpetrovv/blog-api/internal/db"
	"github.com/dpetrovv/blog-api/internal/handlers"
	appmiddleware "github.com/dpetrovv/blog-api/internal/middleware"
)

func main() {
	cfg := config.Load()

	ctx := context.Background()
	store, err := db.NewStore(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db connect failed: %v", err)
	}
	defer store.Close()

	// Create tables if not exist
	conn, err := store.Pool().Acquire(ctx)
	if err != nil {
		log.Fatalf("failed to acquire db connection: %v", err)
	}
	defer conn.Release()

	usersTableSQL := `CREATE TABLE IF NOT EXISTS users (
	    id UUID PRIMARY KEY,
	    username TEXT NOT NULL UNIQUE,
	    password_hash TEXT NOT NULL,
	    created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);`
	_, err = conn.Exec(ctx, usersTableSQL)
	if err != nil {
		log.Fatalf("failed to create users table: %v", err)
	}

	postsTableSQL := `CREATE TABLE IF NOT EXISTS posts (
	    id UUID PRIMARY KEY,
	    title TEXT NOT NULL,
	    content TEXT NOT NULL,
	    author TEXT NOT NULL,
	    created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);`
	_, err = conn.Exec(ctx, postsTableSQL)
	if err != nil {
		log.Fatalf("failed to create posts table: %v", err)
	}

	tokens := auth.NewTokenService(cfg.JWTSecret, cfg.TokenTTL)
	usersHandler := handlers.NewUsersHandler(store, tokens)
	postsHandler := handlers.NewPostsHandler(store)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.New(cors.Options{
		AllowedOrigins:   cfg.CorsAllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}).Handler)

	r.Get("/health", handlers.Health)

	r.Post("/register", usersHandler.Register)
	r.Post("/login", usersHandler.Login)

	r.Route("/blogs", func(r chi.Router) {
		r.Use(appmiddleware.RequireAuth(tokens))
		r.Get("/", postsHandler.List)
		r.Post("/", postsHandler.Create)
		r.Get("/{id}", postsHandler.Get)
		r.Put("/{id}", postsHandler.Update)
		r.Delete("/{id}", postsHandler.Delete)
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("listening on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown error: %v", err)
	}
}
