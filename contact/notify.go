package contact

import (
	"context"
	"encoding/json"
	"fmt"
	"net/smtp"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
)

// Notifier tells the site owner about a new submission. Dispatch is
// fire-and-forget from the service's point of view; failures are logged,
// never surfaced to the submitting visitor.
type Notifier interface {
	NotifyNewSubmission(ctx context.Context, subm Submission) error
}

// NoopNotifier is used when no notification channel is configured.
type NoopNotifier struct{}

func (NoopNotifier) NotifyNewSubmission(ctx context.Context, subm Submission) error {
	return nil
}

// SqsNotifier enqueues a notification job for the mailer worker:
// 1. builds the job with recipient and submission summary
// 2. marshals the job to json
// 3. enqueues the job to the sqs queue
type SqsNotifier struct {
	client   *sqs.Client
	queueURL string
	adminTo  string
}

func NewSqsNotifier(client *sqs.Client, queueURL string, adminTo string) *SqsNotifier {
	return &SqsNotifier{
		client:   client,
		queueURL: queueURL,
		adminTo:  adminTo,
	}
}

type notificationJob struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
	SubmID  string `json:"subm_id"`
}

func (n *SqsNotifier) NotifyNewSubmission(ctx context.Context, subm Submission) error {
	jsonJob, err := json.Marshal(notificationJob{
		To:      n.adminTo,
		Subject: fmt.Sprintf("New contact request: %s", subm.Service),
		Body:    notificationBody(subm),
		SubmID:  subm.ID,
	})
	if err != nil {
		format := "failed to marshal notification job: %w"
		return fmt.Errorf(format, err)
	}

	_, err = n.client.SendMessage(ctx, &sqs.SendMessageInput{
		QueueUrl:    aws.String(n.queueURL),
		MessageBody: aws.String(string(jsonJob)),
	})
	if err != nil {
		format := "failed to enqueue notification job: %w"
		return fmt.Errorf(format, err)
	}

	return nil
}

// SmtpNotifier sends the notification email directly, for deployments
// without a mailer worker.
type SmtpNotifier struct {
	addr    string // host:port
	auth    smtp.Auth
	from    string
	adminTo string
}

func NewSmtpNotifier(host string, port string, username string, password string, from string, adminTo string) *SmtpNotifier {
	var auth smtp.Auth
	if username != "" {
		auth = smtp.PlainAuth("", username, password, host)
	}
	return &SmtpNotifier{
		addr:    host + ":" + port,
		auth:    auth,
		from:    from,
		adminTo: adminTo,
	}
}

func (n *SmtpNotifier) NotifyNewSubmission(ctx context.Context, subm Submission) error {
	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: New contact request: %s\r\n\r\n%s\r\n",
		n.from, n.adminTo, subm.Service, notificationBody(subm))
	return smtp.SendMail(n.addr, n.auth, n.from, []string{n.adminTo}, []byte(msg))
}

func notificationBody(subm Submission) string {
	phone := "-"
	if subm.Phone != nil {
		phone = *subm.Phone
	}
	return fmt.Sprintf(
		"Name: %s\nEmail: %s\nPhone: %s\nService: %s\nSubmitted: %s\n\n%s",
		subm.Name, subm.Email, phone, subm.Service,
		subm.SubmittedAt.Format("2006-01-02 15:04:05 MST"),
		subm.Message,
	)
}
