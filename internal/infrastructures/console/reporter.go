package console

import (
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/ozzus/esports-digest/internal/domain/models"
)

// Reporter prints the human-readable outcome lines of a run.
type Reporter struct {
	out  io.Writer
	ok   *color.Color
	fail *color.Color
}

func NewReporter(out io.Writer) *Reporter {
	if out == nil {
		out = os.Stdout
	}
	return &Reporter{
		out:  out,
		ok:   color.New(color.FgGreen),
		fail: color.New(color.FgRed, color.Bold),
	}
}

func (r *Reporter) Delivered(delivery models.Delivery) {
	_, _ = r.ok.Fprintf(r.out, "消息发送成功 [%s]: %s\n", delivery.Channel, delivery.Response)
}

func (r *Reporter) Failed(channel string, err error) {
	_, _ = r.fail.Fprintf(r.out, "消息发送失败 [%s]: %v\n", channel, err)
}

func (r *Reporter) FetchFailed(err error) {
	_, _ = r.fail.Fprintf(r.out, "[错误] 请求失败：%v\n", err)
}
