package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/wb-go/wbf/dbpg"
	"github.com/wb-go/wbf/rabbitmq"
	"github.com/wb-go/wbf/redis"
	"github.com/wb-go/wbf/zlog"

	dispatchhdl "github.com/drivedesk/notifier/internal/api/handlers/dispatch"
	notifhdl "github.com/drivedesk/notifier/internal/api/handlers/notification"
	triggerhdl "github.com/drivedesk/notifier/internal/api/handlers/trigger"
	"github.com/drivedesk/notifier/internal/api/router"
	"github.com/drivedesk/notifier/internal/api/server"
	"github.com/drivedesk/notifier/internal/config"
	"github.com/drivedesk/notifier/internal/model"
	"github.com/drivedesk/notifier/internal/producer"
	eventhdl "github.com/drivedesk/notifier/internal/rabbitmq/handlers/event"
	"github.com/drivedesk/notifier/internal/rabbitmq/queue"
	notifrepo "github.com/drivedesk/notifier/internal/repository/notification"
	"github.com/drivedesk/notifier/internal/sender"
	dispatchsvc "github.com/drivedesk/notifier/internal/service/dispatch"
	notifsvc "github.com/drivedesk/notifier/internal/service/notification"
	"github.com/drivedesk/notifier/internal/worker"
	"github.com/drivedesk/notifier/pkg/email"
	"github.com/drivedesk/notifier/pkg/sms"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	zlog.Init()
	cfg := config.Must()
	val := validator.New()

	conn, err := rabbitmq.Connect(cfg.RabbitMQ.URL(), cfg.RabbitMQ.Retries, cfg.RabbitMQ.Pause)
	if err != nil {
		zlog.Logger.Fatal().Err(err).Msg("failed to connect to rabbitmq")
	}

	ch, err := conn.Channel()
	if err != nil {
		zlog.Logger.Fatal().Err(err).Msg("failed to open channel")
	}

	q, err := queue.NewEventQueue(ch, cfg)
	if err != nil {
		zlog.Logger.Fatal().Err(err).Msg("failed to create event queue")
	}

	opts := &dbpg.Options{
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	}

	slaveDSNs := make([]string, 0, len(cfg.Database.Slaves))
	for _, s := range cfg.Database.Slaves {
		slaveDSNs = append(slaveDSNs, s.DSN())
	}

	db, err := dbpg.New(cfg.Database.Master.DSN(), slaveDSNs, opts)
	if err != nil {
		zlog.Logger.Fatal().Err(err).Msg("failed to connect to database")
	}

	repo := notifrepo.NewRepository(db)

	dbNum, err := strconv.Atoi(cfg.Redis.Database)
	if err != nil {
		zlog.Logger.Fatal().Err(err).Msg("failed to parse redis database")
	}

	rdb := redis.New(cfg.Redis.Address, cfg.Redis.Password, dbNum)

	if err = rdb.Ping(ctx).Err(); err != nil {
		zlog.Logger.Fatal().Err(err).Msg("failed to connect to redis")
	}

	smtpPort, err := strconv.Atoi(cfg.Email.SMTPPort)
	if err != nil {
		zlog.Logger.Fatal().Err(err).Msg("failed to parse email smtp port")
	}

	emailClient := email.NewClient(
		cfg.Email.SMTPHost,
		smtpPort,
		cfg.Email.Username,
		cfg.Email.Password,
		cfg.Email.From,
	)
	smsClient := sms.NewClient(
		cfg.SMS.APIURL,
		cfg.SMS.Account,
		cfg.SMS.Token,
		cfg.SMS.From,
		cfg.SMS.Timeout,
	)

	senders := sender.Registry{
		model.ChannelEmail: sender.NewEmailSender(emailClient, cfg.Email.Enabled),
		model.ChannelSMS:   sender.NewSMSSender(smsClient, cfg.SMS.Enabled),
		model.ChannelInApp: sender.NewInAppSender(),
	}

	engine := dispatchsvc.NewService(repo, senders)
	service := notifsvc.NewService(repo, rdb)
	triggers := producer.NewProducer(service, cfg.Retry)

	notifHandler := notifhdl.NewHandler(service, val, cfg)
	triggerHandler := triggerhdl.NewHandler(triggers, val)
	dispatchHandler := dispatchhdl.NewHandler(engine)
	eventHandler := eventhdl.NewHandler(triggers)

	dispatcher := worker.NewDispatcher(engine, cfg.Dispatch.Interval, cfg.Dispatch.RetryInterval)
	consumer := worker.NewConsumer(q, eventHandler)

	go dispatcher.Run(ctx)
	go consumer.Run(ctx, cfg.Retry, cfg.Workers.Count)

	r := router.New(notifHandler, triggerHandler, dispatchHandler)
	s := server.New(cfg.Server.HTTPPort, r)

	go func() {
		if err := s.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zlog.Logger.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	<-ctx.Done()
	zlog.Logger.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	zlog.Logger.Info().Msg("shutting down server")
	if err := s.Shutdown(shutdownCtx); err != nil {
		zlog.Logger.Error().Err(err).Msg("failed to shutdown server")
	}

	if errors.Is(shutdownCtx.Err(), context.DeadlineExceeded) {
		zlog.Logger.Info().Msg("timeout exceeded, forcing shutdown")
	}

	if err := db.Master.Close(); err != nil {
		zlog.Logger.Printf("failed to close master DB: %v", err)
	}

	for i, s := range db.Slaves {
		if err := s.Close(); err != nil {
			zlog.Logger.Printf("failed to close slave DB %d: %v", i, err)
		}
	}

	if err := ch.Close(); err != nil {
		zlog.Logger.Error().Err(err).Msg("failed to close RabbitMQ channel")
	}

	if err := conn.Close(); err != nil {
		zlog.Logger.Error().Err(err).Msg("failed to close RabbitMQ connection")
	}
}
