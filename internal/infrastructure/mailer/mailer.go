package mailer

import (
	"context"
	"fmt"
	"strings"

	"lazyintern/internal/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
	"go.uber.org/zap"
)

type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

// SESAPI is the subset of the SES client used here.
type SESAPI interface {
	SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

type SES struct {
	client SESAPI
	from   string
	logger *zap.Logger
}

// New returns an SES mailer, or a log-only mailer when no sender address is
// configured.
func New(ctx context.Context, cfg config.MailConfig, logger *zap.Logger) (Mailer, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if strings.TrimSpace(cfg.From) == "" {
		logger.Warn("MAIL_FROM not set, emails are logged instead of sent")
		return LogMailer{logger: logger}, nil
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Region))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return NewSES(ses.NewFromConfig(awsCfg), cfg.From, logger), nil
}

func NewSES(client SESAPI, from string, logger *zap.Logger) *SES {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SES{client: client, from: from, logger: logger}
}

func (m *SES) Send(ctx context.Context, to, subject, body string) error {
	_, err := m.client.SendEmail(ctx, &ses.SendEmailInput{
		Destination: &types.Destination{
			ToAddresses: []string{to},
		},
		Message: &types.Message{
			Subject: &types.Content{Data: aws.String(subject)},
			Body: &types.Body{
				Text: &types.Content{Data: aws.String(body)},
			},
		},
		Source: aws.String(m.from),
	})
	if err != nil {
		return fmt.Errorf("ses send: %w", err)
	}
	m.logger.Info("email sent", zap.String("to", to), zap.String("subject", subject))
	return nil
}

// LogMailer writes messages to the log. Used in development.
type LogMailer struct {
	logger *zap.Logger
}

func NewLogMailer(logger *zap.Logger) LogMailer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return LogMailer{logger: logger}
}

func (m LogMailer) Send(_ context.Context, to, subject, body string) error {
	m.logger.Info("email (not sent)", zap.String("to", to), zap.String("subject", subject), zap.String("body", body))
	return nil
}
