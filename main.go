package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/etag"
	"github.com/spf13/cobra"

	"github.com/GradGuide-Team/CRM-Gradguide/internals/configs"
	database "github.com/GradGuide-Team/CRM-Gradguide/internals/databases"
	mailService "github.com/GradGuide-Team/CRM-Gradguide/internals/features/mails/service"
	analyticsService "github.com/GradGuide-Team/CRM-Gradguide/internals/features/students/analytics/service"
	studentRepo "github.com/GradGuide-Team/CRM-Gradguide/internals/features/students/students/repository"
	studentService "github.com/GradGuide-Team/CRM-Gradguide/internals/features/students/students/service"
	authRepo "github.com/GradGuide-Team/CRM-Gradguide/internals/features/users/auth/repository"
	authService "github.com/GradGuide-Team/CRM-Gradguide/internals/features/users/auth/service"
	helper "github.com/GradGuide-Team/CRM-Gradguide/internals/helpers"
	"github.com/GradGuide-Team/CRM-Gradguide/internals/infra/queue"
	"github.com/GradGuide-Team/CRM-Gradguide/internals/middlewares"
	"github.com/GradGuide-Team/CRM-Gradguide/internals/middlewares/logger"
	routes "github.com/GradGuide-Team/CRM-Gradguide/internals/route"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gradguide",
		Short: "GradGuide student application CRM",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			configs.LoadEnv()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve()
		},
		SilenceUsage: true,
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve()
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "migrate",
		Short: "Create or update the users and students tables",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := database.ConnectDB(); err != nil {
				return err
			}
			defer database.Close(database.DB)
			if err := database.AutoMigrate(database.DB); err != nil {
				return fmt.Errorf("migrate: %w", err)
			}
			log.Println("[INFO] Migration finished")
			return nil
		},
	})

	cmd.AddCommand(createAdminCmd())
	return cmd
}

func createAdminCmd() *cobra.Command {
	var name, email, password string

	cmd := &cobra.Command{
		Use:   "create-admin",
		Short: "Create an administrator account (no-op when the email exists)",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := database.ConnectDB(); err != nil {
				return err
			}
			defer database.Close(database.DB)

			auth := authService.NewAuthService(
				authRepo.NewUserRepository(database.DB),
				authService.NewTokenService(configs.JWTSecret, configs.AccessTokenTTL),
			)
			user, created, err := auth.EnsureAdmin(cmd.Context(), name, email, password)
			if err != nil {
				return err
			}
			if created {
				log.Printf("[INFO] admin created id=%s email=%s", user.ID, user.Email)
			} else {
				log.Printf("[INFO] user already exists id=%s role=%s", user.ID, user.Role)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "Administrator", "Display name")
	cmd.Flags().StringVar(&email, "email", "", "Login email")
	cmd.Flags().StringVar(&password, "password", "", "Login password (min 6 characters)")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func serve() error {
	if configs.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}

	// DB connect + pool + warm-up
	if err := database.ConnectDB(); err != nil {
		return err
	}
	database.TunePool()
	database.WarmUpQueries()
	if configs.GetEnvBool("DB_AUTO_MIGRATE", false) {
		if err := database.AutoMigrate(database.DB); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}

	users := authRepo.NewUserRepository(database.DB)
	auth := authService.NewAuthService(users, authService.NewTokenService(configs.JWTSecret, configs.AccessTokenTTL))
	students := studentRepo.NewStudentRepository(database.DB)
	publisher := queue.New(configs.KafkaBrokers, configs.KafkaStatusTopic)

	var metrics *middlewares.Metrics
	opts := []studentService.Option{studentService.WithPublisher(publisher)}
	if configs.MetricsEnabled {
		metrics = middlewares.NewMetrics()
		opts = append(opts, studentService.WithObserver(metrics))
	}

	mailboxes := mailService.NewProvisioner(mailService.MailSlurpConfig{
		APIKey:       configs.MailSlurpAPIKey,
		BaseURL:      configs.MailSlurpBaseURL,
		CustomDomain: configs.MailSlurpCustomDomain,
		DomainID:     configs.MailSlurpDomainID,
	})

	app := fiber.New(fiber.Config{
		JSONEncoder:           sonic.Marshal,
		JSONDecoder:           sonic.Unmarshal,
		DisableStartupMessage: true,
		ErrorHandler:          helper.FiberErrorHandler,
		ProxyHeader:           fiber.HeaderXForwardedFor,
	})

	app.Use(middlewares.RecoveryMiddleware())
	app.Use(middlewares.RequestID(15 * time.Second))
	app.Use(logger.LoggerMiddleware())
	app.Use(middlewares.CorsMiddleware(configs.CorsAllowedOrigins))
	app.Use(compress.New(compress.Config{Level: compress.LevelDefault}))
	app.Use(etag.New())
	app.Use(middlewares.GlobalRateLimiter())
	if metrics != nil {
		app.Use(metrics.Middleware())
	}

	routes.SetupRoutes(app, routes.Deps{
		DB:        database.DB,
		Auth:      auth,
		Students:  studentService.NewStudentService(students, users, opts...),
		Analytics: analyticsService.NewAnalyticsService(students, users),
		Mailboxes: mailboxes,
		Metrics:   metrics,
	})

	app.Server().ReadTimeout = 15 * time.Second
	app.Server().WriteTimeout = 30 * time.Second
	app.Server().IdleTimeout = 90 * time.Second

	go func() {
		log.Printf("[INFO] Listening on :%s", configs.Port)
		if err := app.Listen("0.0.0.0:" + configs.Port); err != nil {
			log.Fatalf("server error: %v", err)
		}
	}()

	// graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("[INFO] Shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = app.ShutdownWithContext(ctx)

	if err := publisher.Close(); err != nil {
		log.Printf("[WARN] close publisher: %v", err)
	}
	database.Close(database.DB)
	return nil
}
