package main // Entry point package

import (
	"context"
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/eventscout/internal/config"
	"github.com/iliyamo/eventscout/internal/database"
	"github.com/iliyamo/eventscout/internal/handler"
	"github.com/iliyamo/eventscout/internal/interpreter"
	"github.com/iliyamo/eventscout/internal/limiter"
	"github.com/iliyamo/eventscout/internal/queue"
	"github.com/iliyamo/eventscout/internal/repository"
	"github.com/iliyamo/eventscout/internal/router"
	"github.com/iliyamo/eventscout/internal/search"
	"github.com/iliyamo/eventscout/internal/ticketmaster"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()
	cfg := config.Load()

	// Outbound side: one rate-limit slot shared by every query.
	lim := limiter.New(cfg.TicketmasterMinInterval)
	tm := ticketmaster.New(cfg.TicketmasterBaseURL, cfg.TicketmasterKey, lim, cfg.TicketmasterTimeout)

	var interp interpreter.Interpreter = interpreter.NewHeuristic()
	if cfg.OpenAIKey != "" {
		interp = interpreter.NewOpenAI(cfg.OpenAIBaseURL, cfg.OpenAIKey, cfg.OpenAIModel, cfg.OpenAITimeout)
	}
	resolver := &search.Resolver{
		Interpreter: interp,
		Cascade:     &search.Cascade{API: tm},
	}

	// Optional backends: history needs MySQL, memory/limits/cache need
	// Redis, the chat worker needs RabbitMQ.  Each degrades independently.
	var logs *repository.SearchLogRepo
	if cfg.DBHost != "" {
		db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
		if err != nil {
			log.Printf("mysql: unavailable, search history disabled: %v", err)
		} else if err := database.EnsureSchema(context.Background(), db); err != nil {
			log.Printf("mysql: %v; search history disabled", err)
		} else {
			logs = repository.NewSearchLogRepo(db)
		}
	}
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Printf("redis: unavailable, city memory/rate limit/cache disabled")
	}
	prefs := repository.NewPreferenceRepo(rdb)

	if cfg.RabbitURL != "" {
		consumer := &queue.Consumer{URL: cfg.RabbitURL, Resolver: resolver, Prefs: prefs, Logs: logs}
		go consumer.Start()
	}

	e := echo.New()
	router.RegisterRoutes(e, router.Deps{
		Search:    &handler.SearchHandler{Resolver: resolver, Logs: logs, Prefs: prefs},
		Prefs:     &handler.PreferenceHandler{Prefs: prefs},
		History:   &handler.HistoryHandler{Logs: logs},
		Redis:     rdb,
		JWTSecret: cfg.JWTSecret,
	})

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
