package notifier

import (
	"context"
	"errors"
	"fmt"

	"github.com/mrz1836/postmark"
)

// Config holds the email channel configuration. Tokens are optional so
// development environments can run with the DevNotifier instead.
type Config struct {
	PostmarkServerToken  string `env:"POSTMARK_SERVER_TOKEN"`
	PostmarkAccountToken string `env:"POSTMARK_ACCOUNT_TOKEN"`
	SenderEmail          string `env:"TFA_SENDER_EMAIL,required"`
}

type postmarkNotifier struct {
	client *postmark.Client
	config Config
}

// NewPostmarkNotifier creates a Postmark-backed email notifier.
// All config fields are required for runtime operation.
func NewPostmarkNotifier(cfg Config) (Notifier, error) {
	if cfg.PostmarkServerToken == "" {
		return nil, fmt.Errorf("%w: PostmarkServerToken is required", ErrInvalidConfig)
	}
	if cfg.PostmarkAccountToken == "" {
		return nil, fmt.Errorf("%w: PostmarkAccountToken is required", ErrInvalidConfig)
	}
	if cfg.SenderEmail == "" {
		return nil, fmt.Errorf("%w: SenderEmail is required", ErrInvalidConfig)
	}
	if !emailRegex.MatchString(cfg.SenderEmail) {
		return nil, fmt.Errorf("%w: SenderEmail must be a valid email address", ErrInvalidConfig)
	}

	return &postmarkNotifier{
		client: postmark.NewClient(cfg.PostmarkServerToken, cfg.PostmarkAccountToken),
		config: cfg,
	}, nil
}

// MustNewPostmarkNotifier creates a Postmark notifier that panics on
// invalid config, failing fast during initialization.
func MustNewPostmarkNotifier(cfg Config) Notifier {
	n, err := NewPostmarkNotifier(cfg)
	if err != nil {
		panic(err)
	}
	return n
}

// Send implements Notifier using Postmark's transactional API. Codes go
// out as plain text; tracking stays off because one-time codes are not
// marketing mail.
func (n *postmarkNotifier) Send(ctx context.Context, msg Message) error {
	if err := msg.Validate(); err != nil {
		return err
	}

	resp, err := n.client.SendEmail(ctx, postmark.Email{
		From:     n.config.SenderEmail,
		To:       msg.To,
		Subject:  msg.Subject,
		TextBody: msg.Body,
		Tag:      "tfa-code",
	})
	if err != nil {
		return errors.Join(ErrFailedToSend, err)
	}
	if resp.ErrorCode > 0 {
		return errors.Join(
			ErrFailedToSend,
			fmt.Errorf("postmark error: %d - %s", resp.ErrorCode, resp.Message),
		)
	}
	return nil
}
