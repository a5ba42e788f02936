package serverchan

import (
	"context"
	"fmt"

	derr "github.com/ozzus/esports-digest/internal/domain/errors"
	"github.com/ozzus/esports-digest/internal/domain/models"
	"github.com/ozzus/esports-digest/internal/infrastructures/serverchan/http/client"
)

const ChannelName = "serverchan"

type Notifier struct {
	client  *client.Client
	sendKey string
	title   string
}

func NewNotifier(client *client.Client, sendKey, title string) *Notifier {
	return &Notifier{
		client:  client,
		sendKey: sendKey,
		title:   title,
	}
}

func (n *Notifier) Name() string {
	return ChannelName
}

func (n *Notifier) Send(ctx context.Context, content string) (models.Delivery, error) {
	resp, raw, err := n.client.Send(ctx, n.sendKey, n.title, content)
	if err != nil {
		return models.Delivery{}, err
	}

	if resp.Code != 0 {
		reason := resp.Error
		if reason == "" {
			reason = resp.Message
		}
		return models.Delivery{}, fmt.Errorf("%w: code %d: %s", derr.ErrChannelRejected, resp.Code, reason)
	}

	return models.Delivery{Channel: ChannelName, Response: raw}, nil
}
