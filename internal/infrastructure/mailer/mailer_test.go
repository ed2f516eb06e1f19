package mailer

import (
	"context"
	"errors"
	"testing"

	"lazyintern/internal/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type mockSES struct {
	SendEmailFunc func(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

func (m *mockSES) SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
	return m.SendEmailFunc(ctx, params, optFns...)
}

func TestSES_Send(t *testing.T) {
	var got *ses.SendEmailInput
	m := NewSES(&mockSES{
		SendEmailFunc: func(_ context.Context, params *ses.SendEmailInput, _ ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
			got = params
			return &ses.SendEmailOutput{}, nil
		},
	}, "noreply@lazyintern.dev", nil)

	require.NoError(t, m.Send(context.Background(), "ada@example.com", "Your code", "123456"))
	require.NotNil(t, got)
	assert.Equal(t, []string{"ada@example.com"}, got.Destination.ToAddresses)
	assert.Equal(t, "noreply@lazyintern.dev", aws.ToString(got.Source))
	assert.Equal(t, "Your code", aws.ToString(got.Message.Subject.Data))
	assert.Equal(t, "123456", aws.ToString(got.Message.Body.Text.Data))
}

func TestSES_SendError(t *testing.T) {
	m := NewSES(&mockSES{
		SendEmailFunc: func(context.Context, *ses.SendEmailInput, ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
			return nil, errors.New("throttled")
		},
	}, "noreply@lazyintern.dev", nil)

	err := m.Send(context.Background(), "a@b.c", "s", "b")
	assert.ErrorContains(t, err, "throttled")
}

func TestNew_WithoutSenderLogs(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	m, err := New(context.Background(), config.MailConfig{}, zap.New(core))
	require.NoError(t, err)
	require.IsType(t, LogMailer{}, m)

	require.NoError(t, m.Send(context.Background(), "a@b.c", "subject", "body"))
	assert.Equal(t, 1, logs.FilterMessage("email (not sent)").Len())
}
