package render

import (
	"fmt"
	"strings"

	"github.com/ozzus/esports-digest/internal/domain/models"
)

const beijingTimeNote = "> 所有时间均为北京时间 (UTC+8)"

var leagueFlags = map[string]string{
	models.LeagueLPL: "🇨🇳",
	models.LeagueLCK: "🇰🇷",
}

// Markdown renders a titled table per league, for channels that display
// markdown.
type Markdown struct{}

func (Markdown) Render(digest models.Digest) string {
	date := digest.Date.Format(models.DateLayout)

	var b strings.Builder
	for _, g := range digest.Groups {
		fmt.Fprintf(&b, "### %s今日赛程 (%s)\n\n", leagueTitle(g.League), date)
		b.WriteString("| 时间 | 对阵 |\n")
		b.WriteString("| --- | --- |\n")
		for _, m := range g.Matches {
			fmt.Fprintf(&b, "| %s | %s |\n", m.StartLocal.Format(models.ClockLayout), escapeCell(m.Name))
		}
		b.WriteString("\n")
	}
	b.WriteString(beijingTimeNote)
	b.WriteString("\n")
	return b.String()
}

func leagueTitle(league string) string {
	if flag, ok := leagueFlags[league]; ok {
		return flag + " " + league + " "
	}
	return league + " "
}

// A table cell must stay on one line.
var cellEscaper = strings.NewReplacer(
	"\r\n", " ",
	"\r", " ",
	"\n", " ",
	"|", `\|`,
)

func escapeCell(s string) string {
	return cellEscaper.Replace(s)
}
