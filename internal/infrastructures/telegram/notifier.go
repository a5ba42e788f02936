package telegram

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	derr "github.com/ozzus/esports-digest/internal/domain/errors"
	"github.com/ozzus/esports-digest/internal/domain/models"
)

const ChannelName = "telegram"

type Notifier struct {
	token       string
	chatID      int64
	apiEndpoint string
	httpClient  *http.Client
}

func NewNotifier(token string, chatID int64, apiEndpoint string, httpClient *http.Client) *Notifier {
	if apiEndpoint == "" {
		apiEndpoint = tgbotapi.APIEndpoint
	}
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &Notifier{
		token:       token,
		chatID:      chatID,
		apiEndpoint: apiEndpoint,
		httpClient:  httpClient,
	}
}

func (n *Notifier) Name() string {
	return ChannelName
}

// Send builds the bot per call; the library verifies the token with getMe on
// construction, so a bad token surfaces as a delivery failure. The library
// builds its requests without a context, so every request of the call is
// bound to ctx at the transport.
func (n *Notifier) Send(ctx context.Context, content string) (models.Delivery, error) {
	if err := ctx.Err(); err != nil {
		return models.Delivery{}, err
	}

	bot, err := tgbotapi.NewBotAPIWithClient(n.token, n.apiEndpoint, n.clientFor(ctx))
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return models.Delivery{}, ctxErr
		}
		return models.Delivery{}, fmt.Errorf("%w: telegram auth: %v", derr.ErrDeliveryFailed, err)
	}

	sent, err := bot.Send(tgbotapi.NewMessage(n.chatID, content))
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return models.Delivery{}, ctxErr
		}
		if apiErr, ok := err.(*tgbotapi.Error); ok {
			return models.Delivery{}, fmt.Errorf("%w: code %d: %s", derr.ErrChannelRejected, apiErr.Code, apiErr.Message)
		}
		return models.Delivery{}, fmt.Errorf("%w: telegram send: %v", derr.ErrDeliveryFailed, err)
	}

	return models.Delivery{
		Channel:  ChannelName,
		Response: "message_id=" + strconv.Itoa(sent.MessageID),
	}, nil
}

func (n *Notifier) clientFor(ctx context.Context) *http.Client {
	base := n.httpClient.Transport
	if base == nil {
		base = http.DefaultTransport
	}
	client := *n.httpClient
	client.Transport = contextTransport{ctx: ctx, base: base}
	return &client
}

type contextTransport struct {
	ctx  context.Context
	base http.RoundTripper
}

func (t contextTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	return t.base.RoundTrip(req.WithContext(t.ctx))
}
