package nhn

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff"
	"github.com/go-resty/resty/v2"
)

// AlimTalkClient sends KakaoTalk notification messages through the NHN Cloud
// alimtalk API.
type AlimTalkClient struct {
	httpClient *resty.Client
	appKey     string
	senderKey  string
	logger     *slog.Logger
}

type AlimTalkConfig struct {
	BaseURL   string
	AppKey    string
	SecretKey string
	SenderKey string
}

func NewAlimTalkClient(cfg AlimTalkConfig, logger *slog.Logger) *AlimTalkClient {
	if logger == nil {
		logger = slog.Default()
	}
	client := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(15 * time.Second).
		SetHeader("Content-Type", "application/json").
		SetHeader("X-Secret-Key", cfg.SecretKey)
	return &AlimTalkClient{
		httpClient: client,
		appKey:     cfg.AppKey,
		senderKey:  cfg.SenderKey,
		logger:     logger,
	}
}

type alimTalkRequest struct {
	SenderKey  string             `json:"senderKey"`
	Recipients []alimTalkReceiver `json:"recipientList"`
}

type alimTalkReceiver struct {
	RecipientNo string `json:"recipientNo"`
	Content     string `json:"content"`
}

type nhnHeader struct {
	IsSuccessful  bool   `json:"isSuccessful"`
	ResultCode    int    `json:"resultCode"`
	ResultMessage string `json:"resultMessage"`
}

type alimTalkResponse struct {
	Header nhnHeader `json:"header"`
}

// SendAlimTalk posts one message, retrying transient failures with
// exponential backoff before giving up.
func (c *AlimTalkClient) SendAlimTalk(ctx context.Context, recipient string, body string) error {
	request := alimTalkRequest{
		SenderKey: c.senderKey,
		Recipients: []alimTalkReceiver{
			{RecipientNo: recipient, Content: body},
		},
	}

	attempt := func() error {
		var response alimTalkResponse
		resp, err := c.httpClient.R().
			SetContext(ctx).
			SetBody(request).
			SetResult(&response).
			Post(fmt.Sprintf("/alimtalk/v2.3/appkeys/%s/raw-messages", c.appKey))
		if err != nil {
			return err
		}
		if resp.StatusCode() >= 500 {
			return fmt.Errorf("alimtalk API status %d", resp.StatusCode())
		}
		if resp.StatusCode() >= 400 {
			return backoff.Permanent(fmt.Errorf("alimtalk API status %d", resp.StatusCode()))
		}
		if !response.Header.IsSuccessful {
			return backoff.Permanent(fmt.Errorf("alimtalk API error: %s (code %d)",
				response.Header.ResultMessage, response.Header.ResultCode))
		}
		return nil
	}

	err := backoff.RetryNotify(attempt, sendBackOff(ctx), func(err error, wait time.Duration) {
		c.logger.Warn("alimtalk send retrying",
			"event", "nhn_alimtalk_retry",
			"module", "engagement/automation-service",
			"layer", "adapter",
			"wait", wait.String(),
			"error", err.Error(),
		)
	})
	if err != nil {
		return fmt.Errorf("send alimtalk: %w", err)
	}
	return nil
}

func sendBackOff(ctx context.Context) backoff.BackOffContext {
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = 500 * time.Millisecond
	bo.MaxInterval = 5 * time.Second
	bo.MaxElapsedTime = 30 * time.Second
	return backoff.WithContext(bo, ctx)
}
