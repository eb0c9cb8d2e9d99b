package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"github.com/tsel-ticketmaster/tm-scan/config"
	operatorapp_scan "github.com/tsel-ticketmaster/tm-scan/internal/module/operatorapp/scan"
	scannerapp_event "github.com/tsel-ticketmaster/tm-scan/internal/module/scannerapp/event"
	scannerapp_scan "github.com/tsel-ticketmaster/tm-scan/internal/module/scannerapp/scan"
	scannerapp_ticket "github.com/tsel-ticketmaster/tm-scan/internal/module/scannerapp/ticket"
	"github.com/tsel-ticketmaster/tm-scan/internal/pkg/admissioncache"
	"github.com/tsel-ticketmaster/tm-scan/internal/pkg/jwt"
	internalMiddleware "github.com/tsel-ticketmaster/tm-scan/internal/pkg/middleware"
	"github.com/tsel-ticketmaster/tm-scan/internal/pkg/session"
	"github.com/tsel-ticketmaster/tm-scan/pkg/applogger"
	"github.com/tsel-ticketmaster/tm-scan/pkg/kafka"
	"github.com/tsel-ticketmaster/tm-scan/pkg/middleware"
	"github.com/tsel-ticketmaster/tm-scan/pkg/monitoring"
	"github.com/tsel-ticketmaster/tm-scan/pkg/postgresql"
	"github.com/tsel-ticketmaster/tm-scan/pkg/pubsub"
	"github.com/tsel-ticketmaster/tm-scan/pkg/redis"
	"github.com/tsel-ticketmaster/tm-scan/pkg/server"
	"github.com/tsel-ticketmaster/tm-scan/pkg/validator"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gorilla/mux/otelmux"
)

var (
	c           *config.Config
	ScannerApp  string
	OperatorApp string
)

func init() {
	c = config.Get()
	ScannerApp = fmt.Sprintf("%s/%s", c.Application.Name, "scannerapp")
	OperatorApp = fmt.Sprintf("%s/%s", c.Application.Name, "operatorapp")
}

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	logger := applogger.GetLogrus()

	mon := monitoring.NewOpenTelemetry(
		c.Application.Name,
		c.Application.Environment,
		c.GCP.ProjectID,
	)

	mon.Start(ctx)

	validate := validator.Get()

	jsonWebToken := jwt.NewJSONWebToken([]byte(c.JWT.PrivateKey), []byte(c.JWT.PublicKey))

	psqldb := postgresql.GetDatabase()
	if err := psqldb.Ping(); err != nil {
		logger.WithContext(ctx).WithError(err).Error()
	}

	publisher := pubsub.PublisherFromConfluentKafkaProducer(logger, kafka.NewProducer())
	subscriber := pubsub.SubscriberFromConfluentKafkaConsumer(logger, kafka.NewConsumer())

	rc := redis.GetClient()
	if err := rc.Ping(context.Background()).Err(); err != nil {
		logger.WithContext(ctx).WithError(err).Error()
	}

	sessionStore := session.NewRedisSessionStore(logger, rc)
	admissionCache := admissioncache.NewRedisCache(logger, rc)

	scannerSessionMiddleware := internalMiddleware.NewScannerSessionMiddleware(jsonWebToken, sessionStore)
	adminSessionMiddleware := internalMiddleware.NewAdminSessionMiddleware(jsonWebToken, sessionStore)

	router := mux.NewRouter()
	router.Use(
		otelmux.Middleware(c.Application.Name),
		middleware.HTTPResponseTraceInjection,
		middleware.NewHTTPRequestLogger(logger, c.Application.Debug, http.StatusInternalServerError).Middleware,
	)

	// scanner's app
	scannerappTicketRepo := scannerapp_ticket.NewTicketRepository(logger, psqldb)
	scannerappEventRepo := scannerapp_event.NewEventRepository(logger, psqldb)
	scannerappScanAttemptRepo := scannerapp_scan.NewScanAttemptRepository(logger, psqldb)
	scannerappScanUseCase := scannerapp_scan.NewScanUseCase(scannerapp_scan.ScanUseCaseProperty{
		Logger:                logger,
		Timeout:               c.Application.Timeout,
		TicketRepository:      scannerappTicketRepo,
		EventRepository:       scannerappEventRepo,
		ScanAttemptRepository: scannerappScanAttemptRepo,
		Publisher:             publisher,
		AdmissionCache:        admissionCache,
	})
	scannerapp_scan.InitHTTPHandler(router, scannerSessionMiddleware, validate, scannerappScanUseCase)

	scannerappTicketUseCase := scannerapp_ticket.NewTicketUseCase(scannerapp_ticket.TicketUseCaseProperty{
		Logger:           logger,
		Timeout:          c.Application.Timeout,
		TicketRepository: scannerappTicketRepo,
	})
	scannerapp_ticket.InitEventHandler(subscriber, scannerappTicketUseCase)

	// operator's app
	operatorappScanAttemptRepo := operatorapp_scan.NewScanAttemptRepository(logger, psqldb)
	operatorappScanUseCase := operatorapp_scan.NewScanUseCase(operatorapp_scan.ScanUseCaseProperty{
		Logger:                logger,
		Timeout:               c.Application.Timeout,
		ScanAttemptRepository: operatorappScanAttemptRepo,
		AdmissionCache:        admissionCache,
	})
	operatorapp_scan.InitHTTPHandler(router, adminSessionMiddleware, validate, operatorappScanUseCase)

	go func() {
		if err := subscriber.Run(ctx); err != nil && err != context.Canceled {
			logger.WithContext(ctx).WithError(err).Error()
		}
	}()

	handler := middleware.SetChain(
		router,
		cors.New(cors.Options{
			AllowedOrigins:   c.CORS.AllowedOrigins,
			AllowedMethods:   c.CORS.AllowedMethods,
			AllowedHeaders:   c.CORS.AllowedHeaders,
			ExposedHeaders:   c.CORS.ExposedHeaders,
			MaxAge:           c.CORS.MaxAge,
			AllowCredentials: c.CORS.AllowCredentials,
		}).Handler,
	)

	srv := &server.Server{
		Server: http.Server{
			Addr:    fmt.Sprintf(":%d", c.Application.Port),
			Handler: handler,
		},
		Logger: logger,
	}

	go func() {
		srv.ListenAndServe()
	}()

	sigterm := make(chan os.Signal, 1)
	signal.Notify(sigterm, syscall.SIGINT, syscall.SIGTERM)
	<-sigterm

	srv.Shutdown(ctx)
	cancel()
	subscriber.Close()
	publisher.Close()
	psqldb.Close()
	rc.Close()
	mon.Stop(context.Background())
}
