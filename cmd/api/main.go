package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"strconv"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/spectix11/ai-sdr/internal/infra/database"
	"github.com/spectix11/ai-sdr/internal/infra/http/handlers"
	"github.com/spectix11/ai-sdr/internal/infra/http/middleware"
	"github.com/spectix11/ai-sdr/internal/infra/integration/leadgen"
	"github.com/spectix11/ai-sdr/internal/infra/mail"
	"github.com/spectix11/ai-sdr/internal/infra/queue"
	"github.com/spectix11/ai-sdr/internal/infra/worker"
	"github.com/spectix11/ai-sdr/internal/usecase"
)

func main() {
	godotenv.Load()

	db, err := database.NewDBConnection(os.Getenv("DATABASE_URL"))
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	rabbitMQ, err := queue.NewRabbitMQ(
		envOr("RABBITMQ_USER", "user"),
		envOr("RABBITMQ_PASS", "password"),
		envOr("RABBITMQ_HOST", "localhost"),
		envOr("RABBITMQ_PORT", "5672"),
	)
	if err != nil {
		panic(err)
	}
	defer rabbitMQ.Conn.Close()
	defer rabbitMQ.Ch.Close()

	// 1. Repositório
	leadRepo := database.NewLeadRepository(db)

	// 2. Gateways e Adapters
	leadgenClient := leadgen.NewClient(os.Getenv("LEADGEN_WEBHOOK_URL"), os.Getenv("LEADGEN_WEBHOOK_TOKEN"))
	producer := queue.NewProducer(rabbitMQ.Conn, rabbitMQ.Ch)

	var mailSender *mail.EmailSender
	if os.Getenv("MAIL_HOST") != "" {
		port, _ := strconv.Atoi(envOr("MAIL_PORT", "587"))
		mailSender = mail.NewEmailSender(
			os.Getenv("MAIL_HOST"), port, os.Getenv("MAIL_USER"), os.Getenv("MAIL_PASS"),
		)
	}

	// 3. Workers (fila de importação + idade do pipeline)
	importWorker := queue.NewWorker(rabbitMQ.Ch, leadRepo)
	go importWorker.Start(queue.QueueName)

	ageWorker := worker.NewPipelineAgeWorker(leadRepo)
	go ageWorker.Start(context.Background())

	// 4. UseCases
	generateUC := usecase.NewGenerateLeadsUseCase(leadgenClient)

	// 5. Handlers
	var notifier usecase.NotificationSender
	if mailSender != nil {
		notifier = mailSender
	}
	leadHandler := handlers.NewLeadHandler(leadRepo, notifier, os.Getenv("SALES_NOTIFY_EMAIL"))
	dashboardHandler := handlers.NewDashboardHandler(leadRepo)
	generateHandler := handlers.NewGenerateHandler(generateUC)
	webhookHandler := handlers.NewWebhookHandler(producer)
	healthHandler := handlers.NewHealthHandler(db, rabbitMQ.Conn)

	// 6. Router
	r := chi.NewRouter()
	r.Use(chimw.Logger)
	r.Use(middleware.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"http://localhost:5173", "*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
	}))

	r.Get("/api/leads", leadHandler.HandleList)
	r.Post("/api/leads/refresh", leadHandler.HandleRefresh)
	r.Patch("/api/leads/{id}", leadHandler.HandleUpdateProfile)
	r.Post("/api/leads/{id}/replied", leadHandler.HandleToggleReplied)
	r.Post("/api/leads/{id}/booked", leadHandler.HandleToggleBooked)
	r.Get("/api/dashboard", dashboardHandler.HandleMetrics)
	r.Get("/api/analytics/booked", dashboardHandler.HandleBookedAnalytics)
	r.Post("/api/generate", generateHandler.Handle)
	r.Post("/webhook/leads", webhookHandler.Handle)
	r.Get("/health", healthHandler.Handle)
	r.Handle("/metrics", promhttp.Handler())

	port := ":" + envOr("PORT", "8080")
	log.Printf("🔥 Server AI-SDR rodando na porta %s", port)
	http.ListenAndServe(port, r)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
