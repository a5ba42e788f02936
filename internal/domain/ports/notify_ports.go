package ports

import (
	"context"

	"github.com/ozzus/esports-digest/internal/domain/models"
)

// Renderer turns a digest into the text body of a notification. It must not
// perform I/O.
type Renderer interface {
	Render(digest models.Digest) string
}

type Channel interface {
	Name() string
	Send(ctx context.Context, content string) (models.Delivery, error)
}

type Reporter interface {
	Delivered(delivery models.Delivery)
	Failed(channel string, err error)
	FetchFailed(err error)
}

type RunMetrics interface {
	ObserveFetch(upstream int, err error)
	ObserveDigest(today int)
	ObserveDelivery(channel string, err error)
	Push(ctx context.Context) error
}
