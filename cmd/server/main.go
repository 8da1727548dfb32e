package main

import (
	"context"
	"log"
	"log/slog"
	"os"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/joho/godotenv"

	"github.com/bmcontractors/backend/conf"
	"github.com/bmcontractors/backend/contact"
	"github.com/bmcontractors/backend/http"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Warn("no .env file loaded", "error", err)
	}

	cfg, err := conf.ReadFromEnv()
	if err != nil {
		slog.Error("failed to read config", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()

	var primary *contact.DynamoDbContactsTable
	var sqsClient *sqs.Client
	if cfg.DdbContactTable != "" || cfg.NotifyQueueURL != "" {
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
			awsconfig.WithRegion(cfg.AWSRegion))
		if err != nil {
			slog.Error("failed to load AWS config", "error", err)
			os.Exit(1)
		}
		if cfg.DdbContactTable != "" {
			ddbClient := dynamodb.NewFromConfig(awsCfg)
			primary = contact.NewDynamoDbContactsTable(ddbClient, cfg.DdbContactTable)
		}
		if cfg.NotifyQueueURL != "" {
			sqsClient = sqs.NewFromConfig(awsCfg)
		}
	}
	if primary == nil {
		slog.Warn("no primary store configured, running on the in-memory tier only")
	}

	store := newStore(primary)
	store.StartProbe(ctx)

	notifier := pickNotifier(cfg, sqsClient)
	contactSrvc := contact.NewContactSrvc(store, notifier)

	httpServer := http.NewHttpServer(
		contactSrvc,
		[]byte(cfg.JWTKey),
		cfg.AdminUsername,
		cfg.AdminBcryptPwd,
		cfg.AllowedOrigins,
	)

	log.Printf("Starting server on %s", cfg.HTTPAddress)
	err = httpServer.Start(cfg.HTTPAddress)
	log.Printf("Server stopped with error: %v", err)
}

// newStore keeps the nil-interface subtlety in one place: a nil
// *DynamoDbContactsTable must become a nil interface, not a typed nil.
func newStore(primary *contact.DynamoDbContactsTable) *contact.Store {
	if primary == nil {
		return contact.NewStore(nil)
	}
	return contact.NewStore(primary)
}

func pickNotifier(cfg *conf.Config, sqsClient *sqs.Client) contact.Notifier {
	if cfg.AdminEmail == "" {
		slog.Warn("ADMIN_EMAIL not set, owner notifications disabled")
		return contact.NoopNotifier{}
	}
	if cfg.NotifyQueueURL != "" && sqsClient != nil {
		return contact.NewSqsNotifier(sqsClient, cfg.NotifyQueueURL, cfg.AdminEmail)
	}
	if cfg.SMTPHost != "" {
		return contact.NewSmtpNotifier(
			cfg.SMTPHost, cfg.SMTPPort,
			cfg.SMTPUsername, cfg.SMTPPassword,
			cfg.SMTPFrom, cfg.AdminEmail)
	}
	slog.Warn("no notification channel configured, owner notifications disabled")
	return contact.NoopNotifier{}
}
