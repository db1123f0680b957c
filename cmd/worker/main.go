package main

import (
	"time"

	"go.uber.org/zap"

	"mailmind/internal/agent"
	"mailmind/internal/config"
	"mailmind/internal/llm"
	"mailmind/internal/mqhandler"
	"mailmind/internal/repository"
	"mailmind/pkg/db"
	"mailmind/pkg/logger"
	"mailmind/pkg/mq"
	redisclient "mailmind/pkg/redis"
	"mailmind/pkg/util"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log := logger.NewLogger()
	defer log.Sync()

	log.Info("Starting analysis worker...")

	// Init DB
	dbConn, err := db.NewConnection(cfg.DB, log)
	if err != nil {
		log.Fatal("DB initialization failed", zap.Error(err))
	}
	defer dbConn.Close()
	log.Info("Database connection established")

	// Init Redis
	rdb := redisclient.NewClient(cfg.Redis)
	defer rdb.Close()
	deduper := util.NewDeduper(rdb, time.Hour)

	// Init repositories and the analysis pipeline
	emailRepo := repository.NewEmailRepository(dbConn)
	actionRepo := repository.NewActionItemRepository(dbConn)
	followUpRepo := repository.NewFollowUpRepository(dbConn)

	gateway := llm.NewGateway(cfg.LLM, log)
	log.Info("LLM gateway ready", zap.String("provider", string(gateway.Provider())))

	analyzer := agent.NewAnalyzer(emailRepo, actionRepo, followUpRepo, gateway, log)
	analyzeHandler := mqhandler.NewAnalyzeRequestedHandler(analyzer, deduper, log)

	log.Info("Initializing analyze consumer", zap.String("queue", "email.analyze.q"))
	consumer, err := mq.NewConsumer(cfg.MQ.URL, "email.analyze.q", "email.analyze", log)
	if err != nil {
		log.Fatal("failed to init analyze consumer", zap.Error(err))
	}
	consumer.SetHandler(analyzeHandler.Handle)
	go func() {
		log.Info("Starting analyze consumer")
		if err := consumer.StartConsuming(); err != nil {
			log.Fatal("analyze consumer failed", zap.Error(err))
		}
	}()
	defer consumer.Close()

	log.Info("Worker is ready to process messages")

	// Keep worker running
	select {}
}
