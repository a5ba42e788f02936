package render

import (
	"fmt"
	"strings"

	derr "github.com/ozzus/esports-digest/internal/domain/errors"
	"github.com/ozzus/esports-digest/internal/domain/ports"
)

const (
	FormatText     = "text"
	FormatMarkdown = "markdown"
)

func New(format string) (ports.Renderer, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case FormatText:
		return Plain{}, nil
	case FormatMarkdown:
		return Markdown{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", derr.ErrUnknownFormat, format)
	}
}
