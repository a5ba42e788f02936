package discord

import (
	"context"
	"fmt"
	"net/http"

	"github.com/bwmarrin/discordgo"
	derr "github.com/ozzus/esports-digest/internal/domain/errors"
	"github.com/ozzus/esports-digest/internal/domain/models"
)

const (
	ChannelName = "discord"

	maxMessageRunes = 2000
)

type Notifier struct {
	session   *discordgo.Session
	channelID string
}

func NewNotifier(token, channelID string, httpClient *http.Client) (*Notifier, error) {
	session, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("create discord session: %w", err)
	}
	if httpClient != nil {
		session.Client = httpClient
	}

	return &Notifier{
		session:   session,
		channelID: channelID,
	}, nil
}

func (n *Notifier) Name() string {
	return ChannelName
}

// Send uses the REST API only, so no gateway connection is opened.
func (n *Notifier) Send(ctx context.Context, content string) (models.Delivery, error) {
	msg, err := n.session.ChannelMessageSend(n.channelID, truncate(content, maxMessageRunes), discordgo.WithContext(ctx))
	if err != nil {
		if restErr, ok := err.(*discordgo.RESTError); ok && restErr.Response != nil {
			return models.Delivery{}, fmt.Errorf("%w: status %d: %s", derr.ErrChannelRejected, restErr.Response.StatusCode, string(restErr.ResponseBody))
		}
		return models.Delivery{}, fmt.Errorf("%w: discord send: %v", derr.ErrDeliveryFailed, err)
	}

	return models.Delivery{Channel: ChannelName, Response: "message_id=" + msg.ID}, nil
}

func truncate(s string, limit int) string {
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	return string(r[:limit-1]) + "…"
}
