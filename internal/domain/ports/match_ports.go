package ports

import (
	"context"
	"time"

	"github.com/ozzus/esports-digest/internal/domain/models"
)

type MatchSource interface {
	FetchUpcoming(ctx context.Context) ([]models.RawMatch, error)
}

type MatchCache interface {
	GetUpcoming(ctx context.Context) ([]models.RawMatch, error)
	SetUpcoming(ctx context.Context, matches []models.RawMatch, ttl time.Duration) error
}

type DigestFilter interface {
	Today(raw []models.RawMatch) models.Digest
}
