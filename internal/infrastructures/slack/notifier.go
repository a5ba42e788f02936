package slack

import (
	"context"
	"fmt"
	"net/http"

	derr "github.com/ozzus/esports-digest/internal/domain/errors"
	"github.com/ozzus/esports-digest/internal/domain/models"
	"github.com/slack-go/slack"
)

const ChannelName = "slack"

type Notifier struct {
	webhookURL string
	httpClient *http.Client
}

func NewNotifier(webhookURL string, httpClient *http.Client) *Notifier {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &Notifier{
		webhookURL: webhookURL,
		httpClient: httpClient,
	}
}

func (n *Notifier) Name() string {
	return ChannelName
}

func (n *Notifier) Send(ctx context.Context, content string) (models.Delivery, error) {
	err := slack.PostWebhookCustomHTTPContext(ctx, n.webhookURL, n.httpClient, &slack.WebhookMessage{Text: content})
	if err != nil {
		if statusErr, ok := err.(slack.StatusCodeError); ok {
			return models.Delivery{}, fmt.Errorf("%w: status %d: %s", derr.ErrChannelRejected, statusErr.Code, statusErr.Status)
		}
		return models.Delivery{}, fmt.Errorf("%w: slack webhook: %v", derr.ErrDeliveryFailed, err)
	}

	return models.Delivery{Channel: ChannelName, Response: "ok"}, nil
}
