package nhn

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff"
	"github.com/go-resty/resty/v2"
)

// EmailClient sends transactional mail through the NHN Cloud Email API.
type EmailClient struct {
	httpClient *resty.Client
	appKey     string
	sender     string
	logger     *slog.Logger
}

type EmailConfig struct {
	BaseURL       string
	AppKey        string
	SecretKey     string
	SenderAddress string
}

func NewEmailClient(cfg EmailConfig, logger *slog.Logger) *EmailClient {
	if logger == nil {
		logger = slog.Default()
	}
	client := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(15 * time.Second).
		SetHeader("Content-Type", "application/json").
		SetHeader("X-Secret-Key", cfg.SecretKey)
	return &EmailClient{
		httpClient: client,
		appKey:     cfg.AppKey,
		sender:     cfg.SenderAddress,
		logger:     logger,
	}
}

type emailRequest struct {
	SenderAddress string          `json:"senderAddress"`
	Title         string          `json:"title"`
	Body          string          `json:"body"`
	Receivers     []emailReceiver `json:"receiverList"`
}

type emailReceiver struct {
	ReceiveMailAddr string `json:"receiveMailAddr"`
	ReceiveType     string `json:"receiveType"`
}

type emailResponse struct {
	Header nhnHeader `json:"header"`
}

func (c *EmailClient) SendEmail(ctx context.Context, recipient string, subject string, body string) error {
	request := emailRequest{
		SenderAddress: c.sender,
		Title:         subject,
		Body:          body,
		Receivers: []emailReceiver{
			{ReceiveMailAddr: recipient, ReceiveType: "MRT0"},
		},
	}

	attempt := func() error {
		var response emailResponse
		resp, err := c.httpClient.R().
			SetContext(ctx).
			SetBody(request).
			SetResult(&response).
			Post(fmt.Sprintf("/email/v2.0/appKeys/%s/sender/mail", c.appKey))
		if err != nil {
			return err
		}
		if resp.StatusCode() >= 500 {
			return fmt.Errorf("email API status %d", resp.StatusCode())
		}
		if resp.StatusCode() >= 400 {
			return backoff.Permanent(fmt.Errorf("email API status %d", resp.StatusCode()))
		}
		if !response.Header.IsSuccessful {
			return backoff.Permanent(fmt.Errorf("email API error: %s (code %d)",
				response.Header.ResultMessage, response.Header.ResultCode))
		}
		return nil
	}

	err := backoff.RetryNotify(attempt, sendBackOff(ctx), func(err error, wait time.Duration) {
		c.logger.Warn("email send retrying",
			"event", "nhn_email_retry",
			"module", "engagement/automation-service",
			"layer", "adapter",
			"wait", wait.String(),
			"error", err.Error(),
		)
	})
	if err != nil {
		return fmt.Errorf("send email: %w", err)
	}
	return nil
}
