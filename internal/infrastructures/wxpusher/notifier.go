package wxpusher

import (
	"context"

	"github.com/ozzus/esports-digest/internal/domain/models"
	"github.com/ozzus/esports-digest/internal/infrastructures/wxpusher/dto"
	"github.com/ozzus/esports-digest/internal/infrastructures/wxpusher/http/client"
)

const ChannelName = "wxpusher"

type Notifier struct {
	client   *client.Client
	appToken string
	uid      string
	summary  string
	url      string
}

func NewNotifier(client *client.Client, appToken, uid, summary, url string) *Notifier {
	return &Notifier{
		client:   client,
		appToken: appToken,
		uid:      uid,
		summary:  summary,
		url:      url,
	}
}

func (n *Notifier) Name() string {
	return ChannelName
}

func (n *Notifier) Send(ctx context.Context, content string) (models.Delivery, error) {
	body, err := n.client.SendMessage(ctx, dto.SendMessageRequest{
		AppToken:    n.appToken,
		Content:     content,
		Summary:     n.summary,
		ContentType: dto.ContentTypeText,
		UIDs:        []string{n.uid},
		URL:         n.url,
	})
	if err != nil {
		return models.Delivery{}, err
	}

	return models.Delivery{Channel: ChannelName, Response: body}, nil
}
