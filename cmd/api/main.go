package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/flextime-hq/flextime-backend-go/internal/config"
	appHTTP "github.com/flextime-hq/flextime-backend-go/internal/handler/http"
	"github.com/flextime-hq/flextime-backend-go/internal/pkg/database"
	"github.com/flextime-hq/flextime-backend-go/internal/pkg/email"
	"github.com/flextime-hq/flextime-backend-go/internal/pkg/jibble"
	"github.com/flextime-hq/flextime-backend-go/internal/repository/postgresql"
	aggregatorService "github.com/flextime-hq/flextime-backend-go/internal/service/aggregator"
	clockviewService "github.com/flextime-hq/flextime-backend-go/internal/service/clockview"
	deriverService "github.com/flextime-hq/flextime-backend-go/internal/service/deriver"
	ingestService "github.com/flextime-hq/flextime-backend-go/internal/service/ingest"
	reportService "github.com/flextime-hq/flextime-backend-go/internal/service/report"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	dsn := cfg.DatabaseURL()
	db, err := database.NewPostgreSQLDB(dsn)
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	punchRepo := postgresql.NewPunchRepository(db)
	sessionRepo := postgresql.NewSessionRepository(db)
	agentRepo := postgresql.NewAgentRepository(db)
	groupRepo := postgresql.NewGroupRepository(db)
	activityRepo := postgresql.NewActivityRepository(db)
	clientRepo := postgresql.NewClientRepository(db)

	jibbleClient := jibble.NewClient(cfg.Jibble)
	emailService, err := email.NewEmailService(cfg.SMTP)
	if err != nil {
		log.Fatal("Failed to initialize email service:", err)
	}

	deriverSvc := deriverService.NewDeriverService(punchRepo, sessionRepo)
	aggregatorSvc := aggregatorService.NewAggregatorService(sessionRepo)
	clockViewSvc := clockviewService.NewClockViewService(punchRepo, agentRepo)
	ingestSvc := ingestService.NewIngestService(jibbleClient, punchRepo, agentRepo, groupRepo, activityRepo, deriverSvc)
	reportSvc := reportService.NewReportService(clientRepo, sessionRepo, aggregatorSvc, emailService)

	aggregationHandler := appHTTP.NewAggregationHandler(aggregatorSvc)
	clockInOutHandler := appHTTP.NewClockInOutHandler(clockViewSvc)
	sessionHandler := appHTTP.NewSessionHandler(sessionRepo, deriverSvc)
	ingestHandler := appHTTP.NewIngestHandler(ingestSvc)
	reportHandler := appHTTP.NewReportHandler(reportSvc)
	masterHandler := appHTTP.NewMasterHandler(agentRepo, groupRepo, activityRepo)

	router := appHTTP.NewRouter(
		cfg,
		aggregationHandler,
		clockInOutHandler,
		sessionHandler,
		ingestHandler,
		reportHandler,
		masterHandler,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
