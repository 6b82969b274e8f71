package contact

import (
	"context"
	"fmt"
	"log/slog"
	"net/mail"

	"school-cms/internal/domain/entity"
	"school-cms/internal/infra/mailer"
	"school-cms/internal/observability/logging"
	"school-cms/internal/observability/metrics"
)

// Submission is the contact form payload. All fields are required.
type Submission struct {
	Name    string `json:"name" validate:"required,max=200"`
	Email   string `json:"email" validate:"required,max=254"`
	Phone   string `json:"phone" validate:"required,max=50"`
	Message string `json:"message" validate:"required,max=5000"`
}

// Service validates submissions and hands them to a Mailer.
type Service struct {
	Mailer mailer.Mailer
	To     []mail.Address
	Logger *slog.Logger
}

// Submit validates s and sends one email to the office. A validation failure
// returns *entity.ValidationError and nothing is sent. Delivery is attempted
// once; failures wrap ErrDelivery.
func (svc *Service) Submit(ctx context.Context, s Submission) error {
	if err := entity.Validate(s); err != nil {
		metrics.RecordContactSubmission("invalid")
		return err
	}

	text, html, err := render(s)
	if err != nil {
		metrics.RecordContactSubmission("failed")
		return fmt.Errorf("%w: %w", ErrDelivery, err)
	}

	msg := mailer.Message{
		To:      svc.To,
		Subject: Subject(s),
		Text:    text,
		HTML:    html,
	}
	// 形式が不正なアドレスは本文にだけ残す
	if addr, err := mail.ParseAddress(s.Email); err == nil {
		msg.ReplyTo = &mail.Address{Name: s.Name, Address: addr.Address}
	}

	logger := svc.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger = logging.WithRequestID(ctx, logger)

	if err := svc.Mailer.Send(ctx, msg); err != nil {
		metrics.RecordContactSubmission("failed")
		logger.Error("contact mail delivery failed", slog.Any("error", err))
		return fmt.Errorf("%w: %w", ErrDelivery, err)
	}

	metrics.RecordContactSubmission("sent")
	logger.Info("contact mail sent", slog.Int("recipients", len(svc.To)))
	return nil
}
