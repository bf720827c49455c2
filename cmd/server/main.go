package main

import (
	"log"
	"math/rand"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"github.com/mayurhingaladiya/csboost-fyp/internal/auth"
	"github.com/mayurhingaladiya/csboost-fyp/internal/config"
	"github.com/mayurhingaladiya/csboost-fyp/internal/dailyquiz"
	"github.com/mayurhingaladiya/csboost-fyp/internal/database"
	"github.com/mayurhingaladiya/csboost-fyp/internal/kvstore"
	"github.com/mayurhingaladiya/csboost-fyp/internal/middleware"
	"github.com/mayurhingaladiya/csboost-fyp/internal/notes"
	"github.com/mayurhingaladiya/csboost-fyp/internal/progression"
	"github.com/mayurhingaladiya/csboost-fyp/internal/quiz"
)

func main() {
	cfg := config.Load()
	secret := []byte(cfg.JWTSecret)

	// Initialize database
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	// Wire stores and services
	ledger := progression.NewLedger(db)
	notifier := progression.NewNotifier(kvstore.NewSQLStore(db), ledger, rng)
	progService := progression.NewService(ledger, notifier)

	dailyQuizService := dailyquiz.NewService(dailyquiz.NewStore(db), progService)
	quizService := quiz.NewService(quiz.NewStore(db), progService, rng)
	notesService := notes.NewService(notes.NewStore(db), progService)

	// Initialize handlers
	authHandler := auth.NewHandler(db, secret)
	progHandler := progression.NewHandler(progService)
	dailyQuizHandler := dailyquiz.NewHandler(dailyQuizService)
	quizHandler := quiz.NewHandler(quizService)
	notesHandler := notes.NewHandler(notesService)

	// Setup router
	r := mux.NewRouter()
	api := r.PathPrefix("/api/v1").Subrouter()

	// Public routes
	api.HandleFunc("/auth/register", authHandler.Register).Methods("POST")
	api.HandleFunc("/auth/login", authHandler.Login).Methods("POST")

	// Protected routes
	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth(secret))
	protected.HandleFunc("/auth/me", authHandler.GetCurrentUser).Methods("GET")
	protected.HandleFunc("/auth/me", authHandler.UpdateUser).Methods("PUT")

	protected.HandleFunc("/progression", progHandler.GetProgression).Methods("GET")
	protected.HandleFunc("/progression/rewards", progHandler.RewardHistory).Methods("GET")
	protected.HandleFunc("/progression/levelups", progHandler.PendingLevelUps).Methods("GET")
	protected.HandleFunc("/progression/levelups/next", progHandler.NextLevelUp).Methods("POST")
	protected.HandleFunc("/leaderboard", progHandler.Leaderboard).Methods("GET")

	protected.HandleFunc("/dailyquiz/today", dailyQuizHandler.GetToday).Methods("GET")
	protected.HandleFunc("/dailyquiz/questions", quizHandler.GetDailyQuestions).Methods("GET")
	protected.HandleFunc("/dailyquiz/submit", dailyQuizHandler.Submit).Methods("POST")

	protected.HandleFunc("/topics", quizHandler.GetTopics).Methods("GET")
	protected.HandleFunc("/topics/{id}/subtopics", quizHandler.GetSubtopics).Methods("GET")
	protected.HandleFunc("/subtopics/{id}/quiz", quizHandler.StartQuiz).Methods("GET")
	protected.HandleFunc("/quiz/complete", quizHandler.CompleteQuiz).Methods("POST")
	protected.HandleFunc("/quiz/bonus-roll", quizHandler.RollBonus).Methods("GET")
	protected.HandleFunc("/mocktest", quizHandler.StartMockTest).Methods("GET")
	protected.HandleFunc("/quiz/progress", quizHandler.GetProgress).Methods("GET")

	protected.HandleFunc("/notes/advance", notesHandler.Advance).Methods("POST")
	protected.HandleFunc("/notes/progress", notesHandler.GetProgress).Methods("GET")

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	// CORS
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	log.Printf("Server starting on :%s", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, c.Handler(r)); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
