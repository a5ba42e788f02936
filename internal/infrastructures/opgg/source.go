package opgg

import (
	"context"
	"fmt"

	"github.com/ozzus/esports-digest/internal/domain/models"
	"github.com/ozzus/esports-digest/internal/infrastructures/opgg/http/client"
)

type Source struct {
	client *client.Client
}

func NewSource(client *client.Client) *Source {
	return &Source{
		client: client,
	}
}

func (s *Source) FetchUpcoming(ctx context.Context) ([]models.RawMatch, error) {
	matches, err := s.client.UpcomingMatches(ctx)
	if err != nil {
		return nil, fmt.Errorf("get upcoming matches: %w", err)
	}

	return matches, nil
}
