package main

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/matrimony/backend/internal/config"
	"github.com/matrimony/backend/internal/services"
)

// notify-worker sweeps approved-but-unnotified contact requests and emails
// the requester. A failed send is logged and left unmarked, so the next
// sweep tries again; members never see delivery errors.
func main() {
	cfg := config.Load()

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	if cfg.MongoURI == "" {
		logger.Fatal("MONGODB_URI is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, err := services.ConnectMongo(ctx, cfg.MongoURI)
	if err != nil {
		logger.Fatal("failed to connect to MongoDB", zap.Error(err))
	}
	defer client.Disconnect(context.Background())

	biodataService, err := services.NewMongoBiodataService(ctx, client, cfg.MongoDatabase)
	if err != nil {
		logger.Fatal("failed to initialize biodata service", zap.Error(err))
	}
	contactService, err := services.NewMongoContactService(ctx, client, cfg.MongoDatabase, biodataService)
	if err != nil {
		logger.Fatal("failed to initialize contact service", zap.Error(err))
	}

	mailer := services.NewSendGridMailer(cfg.SendGridAPIKey, cfg.MailFromEmail)

	logger.Info("notify-worker started", zap.Duration("interval", cfg.NotifyInterval))

	ticker := time.NewTicker(cfg.NotifyInterval)
	defer ticker.Stop()
	for ; ; <-ticker.C {
		sweep(contactService, mailer, logger)
	}
}

func sweep(contacts services.ContactRequestStore, mailer services.Mailer, logger *zap.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	pending, err := contacts.ListUnnotified(ctx)
	if err != nil {
		logger.Error("failed to list unnotified contact requests", zap.Error(err))
		return
	}

	for _, cr := range pending {
		if err := mailer.SendContactApproved(ctx, cr.SelfEmail, cr.Name, cr.BiodataID); err != nil {
			logger.Warn("failed to send approval mail",
				zap.String("request_id", cr.ID),
				zap.String("to", cr.SelfEmail),
				zap.Error(err))
			continue
		}
		if err := contacts.MarkNotified(ctx, cr.ID); err != nil {
			logger.Error("failed to mark contact request notified",
				zap.String("request_id", cr.ID),
				zap.Error(err))
		}
	}
}
