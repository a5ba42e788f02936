package render

import (
	"strings"

	"github.com/ozzus/esports-digest/internal/domain/models"
)

// Plain renders one header line per league followed by a two-line block per
// match.
type Plain struct{}

func (Plain) Render(digest models.Digest) string {
	var b strings.Builder
	for _, g := range digest.Groups {
		b.WriteString("\n赛区：")
		b.WriteString(g.League)
		for _, m := range g.Matches {
			b.WriteString("\n比赛：")
			b.WriteString(m.Name)
			b.WriteString("\n开始时间：")
			b.WriteString(m.LocalTime())
		}
	}
	return b.String()
}
