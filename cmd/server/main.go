package main

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/hibiken/asynq"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	config "github.com/reservapp/reservapp/configs"
	"github.com/reservapp/reservapp/internal/api/handlers"
	"github.com/reservapp/reservapp/internal/api/middleware"
	job "github.com/reservapp/reservapp/internal/jobs"
	"github.com/reservapp/reservapp/internal/queue"
	"github.com/reservapp/reservapp/internal/repository"
	"github.com/reservapp/reservapp/internal/service"
	"github.com/robfig/cron"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: Failed to load environment variables", err)
	}

	cfg := config.LoadConfig()

	db, err := sql.Open("postgres", cfg.PostgresURI)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer closeDB(db)

	if err := db.Ping(); err != nil {
		log.Fatalf("Database is unreachable: %v", err)
	}

	redisConn := asynq.RedisClientOpt{Addr: cfg.RedisURI}
	client := asynq.NewClient(redisConn)
	defer client.Close()

	app := fiber.New(fiber.Config{
		ReadTimeout:  time.Minute,
		WriteTimeout: time.Minute,
		BodyLimit:    20 * 1024 * 1024, // 20 MB
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			log.Printf("Error: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
		},
	})

	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOriginsFunc: func(origin string) bool {
			return true
		},
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
		MaxAge:           3600,
	}))

	userRepo := repository.NewUserRepository(db)
	planRepo := repository.NewPlanRepository(db)
	subscriptionRepo := repository.NewSubscriptionRepository(db)
	reservationRepo := repository.NewReservationRepository(db)
	resourceRepo := repository.NewResourceRepository(db)

	r2Service := service.NewR2Service(*cfg)
	emailSender := service.NewEmailSender(*cfg)
	gateway := service.NewMercadoPagoService(*cfg)

	authService := service.NewAuthService(*cfg, userRepo)
	userService := service.NewUserService(userRepo)
	planService := service.NewPlanService(planRepo, subscriptionRepo)
	subscriptionService := service.NewSubscriptionService(userRepo, planRepo, subscriptionRepo, gateway)
	reservationService := service.NewReservationService(reservationRepo, resourceRepo, subscriptionRepo)
	resourceService := service.NewResourceService(resourceRepo, *r2Service)
	adminService := service.NewAdminService(userRepo, subscriptionRepo, reservationRepo)
	exportService := service.NewExportService(userRepo, subscriptionRepo)

	authMiddleware := middleware.NewAuthMiddleware(*cfg, userService)

	auth := handlers.NewAuthHandler(*cfg, authService)
	app.Post("/auth/register", auth.Register)
	app.Post("/auth/login", auth.Login)
	app.Post("/auth/logout", auth.Logout)
	app.Get("/login/google", auth.GoogleLogin)
	app.Get("/login/google/callback", auth.GoogleLoginCallback)

	plan := handlers.NewPlanHandler(planService)
	app.Get("/plans", plan.ListPlans)

	resource := handlers.NewResourceHandler(resourceService)
	app.Get("/resources", resource.ListResources)

	payment := handlers.NewPaymentHandler(subscriptionService)
	app.Post("/webhooks/mercadopago", payment.Webhook)

	api := app.Group("/api")
	api.Use(authMiddleware.AuthMiddleware())

	user := handlers.NewUserHandler(userService)
	api.Get("/user/info", user.GetUserInfo)

	subscription := handlers.NewSubscriptionHandler(subscriptionService)
	api.Get("/subscription", subscription.GetMySubscription)
	api.Post("/subscription/checkout", subscription.Checkout)
	api.Post("/subscription/refresh", subscription.Refresh)
	api.Post("/subscription/cancel", subscription.Cancel)

	reservation := handlers.NewReservationHandler(reservationService, userService, client)
	api.Get("/reservations", reservation.ListReservations)
	api.Post("/reservations/create", reservation.CreateReservation)
	api.Post("/reservations/cancel", reservation.CancelReservation)

	admin := api.Group("/admin")
	admin.Use(authMiddleware.AdminMiddleware())

	adminHandler := handlers.NewAdminHandler(adminService, exportService, userService, subscriptionService)
	admin.Get("/dashboard", adminHandler.Dashboard)
	admin.Get("/users", adminHandler.ListUsers)
	admin.Get("/export/users", adminHandler.ExportUsers)
	admin.Get("/export/subscriptions", adminHandler.ExportSubscriptions)
	admin.Post("/subscriptions/override", adminHandler.OverrideSubscription)
	admin.Post("/subscriptions/reconcile", adminHandler.ReconcileSubscription)

	admin.Get("/plans", plan.ListAllPlans)
	admin.Post("/plans/create", plan.CreatePlan)
	admin.Post("/plans/update", plan.UpdatePlan)
	admin.Post("/plans/remove", plan.RemovePlan)

	admin.Get("/resources", resource.ListAllResources)
	admin.Post("/resources/create", resource.CreateResource)
	admin.Post("/resources/update", resource.UpdateResource)
	admin.Post("/resources/remove", resource.RemoveResource)
	admin.Post("/resources/photo", resource.UploadPhoto)

	// cron jobs
	billingJobs := job.NewBillingJobs(client)

	//queue
	queueW := queue.NewQueue(subscriptionRepo, emailSender)

	c := cron.New()
	c.AddFunc("@daily", billingJobs.EnqueuePaymentReminders)
	c.AddFunc("@daily", billingJobs.EnqueueGraceSweep)
	c.Start()

	go func() {
		server := asynq.NewServer(redisConn, asynq.Config{
			Concurrency: 10,
		})

		mux := asynq.NewServeMux()
		mux.HandleFunc(queue.TaskTypeSendEmail, queueW.HandleSendEmailTask)
		mux.HandleFunc(queue.TaskTypePaymentReminders, queueW.HandlePaymentRemindersTask)
		mux.HandleFunc(queue.TaskTypeGraceSweep, queueW.HandleGraceSweepTask)

		log.Println("Starting the Asynq server...")
		if err := server.Run(mux); err != nil {
			log.Fatalf("Could not start Asynq server: %v", err)
		}
	}()

	go func() {
		if err := app.Listen(":3000"); err != nil {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()
	log.Println("Server is running on http://localhost:3000")

	gracefulShutdown(app, db)
}

func closeDB(db *sql.DB) {
	fmt.Fprint(os.Stdout, "Closing database connection... ")
	if err := db.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to close database: %v", err)
		return
	}
	fmt.Fprintln(os.Stdout, "Done")
}

func gracefulShutdown(app *fiber.App, db *sql.DB) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	<-quit
	log.Println("Shutting down server...")

	if err := app.Shutdown(); err != nil {
		log.Fatalf("Failed to shut down server: %v", err)
	}

	closeDB(db)
	log.Println("Server shutdown complete.")
}
