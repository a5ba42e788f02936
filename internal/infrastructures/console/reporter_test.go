package console

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/ozzus/esports-digest/internal/domain/models"
)

func TestReporter_Lines(t *testing.T) {
	prev := color.NoColor
	color.NoColor = true
	defer func() { color.NoColor = prev }()

	var buf bytes.Buffer
	r := NewReporter(&buf)

	r.Delivered(models.Delivery{Channel: "wxpusher", Response: `{"code":1000}`})
	r.Failed("serverchan", errors.New("code 40001: bad pushtoken"))
	r.FetchFailed(errors.New("source unavailable"))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d: %q", len(lines), buf.String())
	}
	if lines[0] != `消息发送成功 [wxpusher]: {"code":1000}` {
		t.Fatalf("unexpected success line %q", lines[0])
	}
	if lines[1] != "消息发送失败 [serverchan]: code 40001: bad pushtoken" {
		t.Fatalf("unexpected failure line %q", lines[1])
	}
	if !strings.Contains(lines[2], "source unavailable") {
		t.Fatalf("unexpected fetch line %q", lines[2])
	}
}
