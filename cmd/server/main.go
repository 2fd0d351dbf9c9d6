package main

import (
	"context"
	"database/sql"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"

	"github.com/dreamschools/adminauth"
)

func main() {
	// optional .env for local development; real deployments use the environment
	_ = godotenv.Load()

	cfg := adminauth.FromEnv()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	ctx := context.Background()

	db, err := openDatabase(ctx, cfg.DSN)
	if err != nil {
		log.Fatalf("unable to open database: %v", err)
	}
	defer db.Close()

	repo := adminauth.NewRepositoryManager(db)
	repo.MustValidate()

	provider := adminauth.NewAdminProvider(repo.Admins())
	auther := adminauth.NewAuthenticator(provider, cfg)

	httpAuth, err := adminauth.NewHTTPAuthenticator(auther, cfg)
	if err != nil {
		log.Fatalf("unable to build http authenticator: %v", err)
	}

	app := newApp(cfg, repo, httpAuth)

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Fatalf("server stopped: %v", err)
		}
	}()

	waitExitSignal()

	if err := app.Shutdown(); err != nil {
		log.Printf("shutdown error: %v", err)
	}
}

func newApp(cfg *adminauth.EnvConfig, repo adminauth.RepositoryManager, httpAuth *adminauth.RouteAuthenticator) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName: "dreamschools-adminauth",
	})

	app.Use(recover.New())

	if len(cfg.AllowedOrigins) > 0 {
		app.Use(cors.New(cors.Config{
			AllowOrigins:     strings.Join(cfg.AllowedOrigins, ","),
			AllowCredentials: true,
		}))
	} else {
		app.Use(cors.New())
	}

	authController := adminauth.NewAuthController(
		adminauth.WithAuthControllerRepo(repo),
		adminauth.WithAuthControllerAuther(httpAuth),
	)
	adminauth.RegisterAuthRoutes(app.Group("/api/v1/auth"), authController)

	teacherController := adminauth.NewTeacherController(repo, nil)
	adminauth.RegisterTeacherRoutes(
		app.Group("/api/admin/teachers"),
		teacherController,
		httpAuth.ProtectedRoute(),
		httpAuth.RequireRole(adminauth.RoleAdmin),
	)

	return app
}

func openDatabase(ctx context.Context, dsn string) (*bun.DB, error) {
	sqldb, err := sql.Open(sqliteshim.ShimName, dsn)
	if err != nil {
		return nil, err
	}

	db := bun.NewDB(sqldb, sqlitedialect.New())

	if err := adminauth.CreateSchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

func waitExitSignal() {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh
}
