package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/athena"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/joho/godotenv"
	"github.com/slack-go/slack"

	"github.com/brandazine/stock-nudge/internal/analytics"
	"github.com/brandazine/stock-nudge/internal/config"
	"github.com/brandazine/stock-nudge/internal/email"
	"github.com/brandazine/stock-nudge/internal/notify"
	"github.com/brandazine/stock-nudge/internal/report"
	"github.com/brandazine/stock-nudge/internal/repository/postgres"
	"github.com/brandazine/stock-nudge/internal/service/nudge"
	"github.com/brandazine/stock-nudge/pkg/locker"
	"github.com/brandazine/stock-nudge/pkg/logger"
)

func main() {
	// Local development convenience; the file is absent in deployment.
	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.NewLogger(nil).Fatal(err, "failed to load config")
	}

	log := logger.NewLogger(&logger.Config{Level: cfg.LogLevel})

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	lock, err := locker.New(locker.Config{
		URL: cfg.Redis.URL,
		Key: cfg.Redis.LockKey,
		TTL: cfg.Redis.LockTTL,
	})
	if err != nil {
		log.Fatal(err, "failed to connect to Redis")
	}
	defer lock.Close()

	release, err := lock.Acquire(ctx)
	if err != nil {
		if errors.Is(err, locker.ErrAlreadyLocked) {
			log.Info("another run is in progress, exiting")
			return
		}
		log.Fatal(err, "failed to acquire run lock")
	}
	defer func() {
		if err := release(context.Background()); err != nil {
			log.Error(err, "failed to release run lock")
		}
	}()

	db, err := postgres.NewDB(postgres.Config{
		Host:     cfg.Database.Host,
		Port:     cfg.Database.Port,
		User:     cfg.Database.User,
		Password: cfg.Database.Password,
		Name:     cfg.Database.Name,
		SSLMode:  cfg.Database.SSLMode,
	})
	if err != nil {
		log.Fatal(err, "failed to connect to database")
	}
	defer db.Close()

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Athena.Region))
	if err != nil {
		log.Fatal(err, "failed to load AWS config")
	}

	runner := analytics.NewRunner(athena.NewFromConfig(awsCfg), analytics.RunnerConfig{
		Database:       cfg.Athena.Database,
		OutputLocation: cfg.Athena.OutputLocation(),
		MaxExecutions:  cfg.Athena.MaxExecutions,
		PollInterval:   cfg.Athena.PollInterval,
	}, log)
	fetcher := analytics.NewFetcher(s3.NewFromConfig(awsCfg))

	notifier := notify.NewSlackNotifier(slack.New(cfg.Slack.Token), cfg.Slack.Channel)
	mailer := email.NewSMTPSender(email.Config{
		Host:          cfg.SMTP.Host,
		Port:          cfg.SMTP.Port,
		Username:      cfg.SMTP.Username,
		Password:      cfg.SMTP.Password,
		From:          cfg.SMTP.From,
		Mode:          cfg.ServiceMode,
		RatePerSecond: cfg.Mail.RatePerSecond,
	}, log)

	svc := nudge.NewService(
		nudge.Config{OpsRecipient: cfg.Mail.OpsRecipient},
		runner,
		fetcher,
		report.NewRenderer(),
		postgres.NewBrandRepository(db),
		postgres.NewOutreachRepository(db),
		notifier,
		mailer,
		log,
	)

	if err := svc.Run(ctx); err != nil {
		log.Error(err, "run failed")
		os.Exit(1)
	}
	log.Info("run complete")
}
