package main

import (
	"go.uber.org/zap"

	"mailmind/internal/agentic"
	"mailmind/internal/api"
	"mailmind/internal/compose"
	"mailmind/internal/config"
	"mailmind/internal/graph"
	"mailmind/internal/llm"
	"mailmind/internal/repository"
	"mailmind/internal/service"
	"mailmind/pkg/db"
	"mailmind/pkg/logger"
	"mailmind/pkg/mq"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log := logger.NewLogger()
	defer log.Sync()

	log.Info("Starting API service...")

	// Init DB
	dbConn, err := db.NewConnection(cfg.DB, log)
	if err != nil {
		log.Fatal("DB initialization failed", zap.Error(err))
	}
	defer dbConn.Close()
	log.Info("Database connection established")

	// Init MQ publisher
	publisher, err := mq.NewPublisher(cfg.MQ.URL)
	if err != nil {
		log.Fatal("MQ initialization failed", zap.Error(err))
	}
	defer publisher.Close()
	log.Info("Message queue connection established")

	// Init repositories
	emailRepo := repository.NewEmailRepository(dbConn)
	actionRepo := repository.NewActionItemRepository(dbConn)
	followUpRepo := repository.NewFollowUpRepository(dbConn)
	draftRepo := repository.NewDraftRepository(dbConn)
	promptRepo := repository.NewPromptRepository(dbConn)

	// Init services
	gateway := llm.NewGateway(cfg.LLM, log)
	log.Info("LLM gateway ready", zap.String("provider", string(gateway.Provider())))

	graphBuilder := graph.NewBuilder(emailRepo)
	composer := compose.NewComposer(emailRepo, draftRepo, promptRepo, graphBuilder, gateway, log)
	executor := agentic.NewExecutor(emailRepo, actionRepo, draftRepo, log)
	inboxService := service.NewInboxService(emailRepo, promptRepo, log)
	analyticsService := service.NewAnalyticsService(emailRepo, draftRepo)
	chatService := service.NewChatService(emailRepo, gateway, log)
	meetingService := service.NewMeetingService(emailRepo, gateway, log)

	// Init handlers
	inboxHandler := api.NewInboxHandler(inboxService, cfg.Data.MockInboxPath, cfg.Data.DefaultPromptsPath)
	agentHandler := api.NewAgentHandler(inboxService, chatService, composer, publisher, log)
	agenticHandler := api.NewAgenticHandler(executor, composer)
	taskHandler := api.NewTaskHandler(actionRepo, followUpRepo)
	promptHandler := api.NewPromptHandler(promptRepo, emailRepo, gateway)
	analyticsHandler := api.NewAnalyticsHandler(analyticsService, graphBuilder)
	meetingHandler := api.NewMeetingHandler(meetingService)

	router := api.NewRouter(
		inboxHandler,
		agentHandler,
		agenticHandler,
		taskHandler,
		promptHandler,
		analyticsHandler,
		meetingHandler,
		dbConn,
		publisher,
	)

	log.Info("API listening", zap.String("port", cfg.Server.Port))
	if err := router.Run(cfg.Server.Port); err != nil {
		log.Fatal("server exited", zap.Error(err))
	}
}
