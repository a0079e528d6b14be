package main

import (
	"fmt"
	"net/http"

	"github.com/opikzxx/ad-catering/config"
	"github.com/opikzxx/ad-catering/db"
	"github.com/opikzxx/ad-catering/db/mongo"
	"github.com/opikzxx/ad-catering/db/postgres"
	"github.com/opikzxx/ad-catering/handlers"
	"github.com/opikzxx/ad-catering/middleware"
	"github.com/opikzxx/ad-catering/repository"
	"github.com/opikzxx/ad-catering/routes"
)

func main() {
	// Load config from .env or config file
	cfg := config.LoadConfig()

	var userRepo repository.UserRepository
	var sessionRepo repository.SessionRepository
	var categoryRepo repository.CategoryRepository
	var menuRepo repository.MenuRepository

	switch db.DBType(cfg.DBType) {
	case db.Postgres:
		// Run migrations (for Postgres)
		db.RunMigrations(cfg.PostgresURL)

		pg := postgres.NewPostgresDB(cfg.PostgresURL)
		if err := pg.Connect(); err != nil {
			panic(err)
		}
		defer pg.Disconnect()

		userRepo = repository.NewPostgresUserRepo(pg.Conn)
		sessionRepo = repository.NewPostgresSessionRepo(pg.Conn)
		categoryRepo = repository.NewPostgresCategoryRepo(pg.Conn)
		menuRepo = repository.NewPostgresMenuRepo(pg.Conn)

	case db.Mongo:
		mg := mongo.NewMongoDB(cfg.MongoURL)
		if err := mg.Connect(); err != nil {
			panic(err)
		}
		defer mg.Disconnect()

		userRepo = repository.NewMongoUserRepo(mg.Client)
		sessionRepo = repository.NewMongoSessionRepo(mg.Client)
		categoryRepo = repository.NewMongoCategoryRepo(mg.Client)
		menuRepo = repository.NewMongoMenuRepo(mg.Client)

	default:
		panic("DB_TYPE not supported")
	}

	// Handlers
	authHandler := &handlers.AuthHandler{
		Users:     userRepo,
		Sessions:  sessionRepo,
		JWTSecret: cfg.JWTSecret,
	}
	categoryHandler := &handlers.CategoryHandler{Repo: categoryRepo}
	menuHandler := handlers.NewMenuHandler(menuRepo, categoryRepo)
	publicHandler := &handlers.PublicHandler{Repo: menuRepo}

	// PDF handler with combined repository
	catalogRepo := repository.NewCatalogRepository(menuRepo)
	pdfHandler := handlers.NewCatalogPDFHandler(catalogRepo, "AD Catering")

	adminAuth := middleware.NewAdminAuth(cfg.JWTSecret)

	mux := routes.SetupRoutes(authHandler, categoryHandler, menuHandler, publicHandler, pdfHandler, adminAuth)

	// The edge gate wraps everything: it redirects browser navigation based
	// on the session cookie and passes API traffic through untouched.
	gate := middleware.NewGate(sessionRepo, userRepo)
	handler := gate.Handler(mux)

	port := cfg.Port
	fmt.Printf("Server running on port %s\n", port)
	if err := http.ListenAndServe(":"+port, handler); err != nil {
		panic(err)
	}
}
