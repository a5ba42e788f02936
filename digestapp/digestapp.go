package digestapp

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/ozzus/esports-digest/internal/application/render"
	"github.com/ozzus/esports-digest/internal/application/schedule"
	"github.com/ozzus/esports-digest/internal/application/service"
	"github.com/ozzus/esports-digest/internal/config"
	derr "github.com/ozzus/esports-digest/internal/domain/errors"
	"github.com/ozzus/esports-digest/internal/domain/models"
	"github.com/ozzus/esports-digest/internal/domain/ports"
	"github.com/ozzus/esports-digest/internal/infrastructures/console"
	cacheredis "github.com/ozzus/esports-digest/internal/infrastructures/db/redis"
	"github.com/ozzus/esports-digest/internal/infrastructures/db/tracing"
	"github.com/ozzus/esports-digest/internal/infrastructures/discord"
	"github.com/ozzus/esports-digest/internal/infrastructures/metrics"
	"github.com/ozzus/esports-digest/internal/infrastructures/opgg"
	opggclient "github.com/ozzus/esports-digest/internal/infrastructures/opgg/http/client"
	"github.com/ozzus/esports-digest/internal/infrastructures/serverchan"
	scclient "github.com/ozzus/esports-digest/internal/infrastructures/serverchan/http/client"
	"github.com/ozzus/esports-digest/internal/infrastructures/slack"
	"github.com/ozzus/esports-digest/internal/infrastructures/telegram"
	"github.com/ozzus/esports-digest/internal/infrastructures/wxpusher"
	wxclient "github.com/ozzus/esports-digest/internal/infrastructures/wxpusher/http/client"
	"github.com/redis/go-redis/v9"
	tracesdk "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
)

const serviceName = "esports-digest"

var defaultFormats = map[string]string{
	config.ChannelWxPusher:   render.FormatText,
	config.ChannelServerChan: render.FormatMarkdown,
	config.ChannelTelegram:   render.FormatText,
	config.ChannelDiscord:    render.FormatText,
	config.ChannelSlack:      render.FormatText,
}

type DigestApp struct {
	log     *zap.Logger
	service *service.DigestService
	redis   *redis.Client
	tracer  *tracesdk.TracerProvider
}

// New wires the pipeline for the channel selected in cfg. Any error it
// returns is a configuration fault.
func New(log *zap.Logger, cfg *config.Config, out io.Writer) (*DigestApp, error) {
	const op = "digestapp.New"

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("%s: load timezone %q: %w", op, cfg.Timezone, err)
	}

	channel, err := NewChannel(cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	renderer, err := NewRenderer(cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	app := &DigestApp{log: log}

	if cfg.Jaeger != "" {
		tp, err := tracing.InitTracer(serviceName, cfg.Env, cfg.Jaeger)
		if err != nil {
			return nil, fmt.Errorf("%s: init tracer: %w", op, err)
		}
		app.tracer = tp
	}

	source := opgg.NewSource(opggclient.NewClient(
		cfg.Upstream.URL,
		cfg.Upstream.UserAgent,
		&http.Client{Timeout: cfg.Upstream.Timeout},
	))
	filter := schedule.NewFilter(log, models.TargetLeagues, loc, time.Now)

	opts := []service.Option{
		service.WithMetrics(metrics.NewRecorder(cfg.Metrics.PushgatewayURL, cfg.Metrics.Job)),
	}
	if cfg.Redis.Enabled() {
		app.redis = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		opts = append(opts, service.WithCache(cacheredis.NewMatchCache(app.redis, serviceName), cfg.Redis.CacheTTL))
	}

	app.service = service.NewDigestService(log, source, filter, renderer, channel, console.NewReporter(out), opts...)

	log.Info("pipeline wired",
		zap.String("channel", channel.Name()),
		zap.String("timezone", loc.String()),
		zap.Bool("cache", cfg.Redis.Enabled()),
		zap.Bool("tracing", app.tracer != nil),
		zap.Bool("metrics_push", cfg.Metrics.PushgatewayURL != ""),
	)

	return app, nil
}

func NewChannel(cfg *config.Config) (ports.Channel, error) {
	httpClient := &http.Client{Timeout: cfg.Notifier.Timeout}

	switch cfg.Notifier.Channel {
	case config.ChannelWxPusher:
		return wxpusher.NewNotifier(
			wxclient.NewClient(cfg.WxPusher.BaseURL, httpClient),
			cfg.WxPusher.AppToken,
			cfg.WxPusher.UID,
			cfg.WxPusher.Summary,
			cfg.WxPusher.URL,
		), nil
	case config.ChannelServerChan:
		return serverchan.NewNotifier(
			scclient.NewClient(cfg.ServerChan.BaseURL, httpClient),
			cfg.ServerChan.SendKey,
			cfg.ServerChan.Title,
		), nil
	case config.ChannelTelegram:
		return telegram.NewNotifier(cfg.Telegram.Token, cfg.Telegram.ChatID, "", httpClient), nil
	case config.ChannelDiscord:
		return discord.NewNotifier(cfg.Discord.Token, cfg.Discord.ChannelID, httpClient)
	case config.ChannelSlack:
		return slack.NewNotifier(cfg.Slack.WebhookURL, httpClient), nil
	default:
		return nil, fmt.Errorf("%w: %q", derr.ErrUnknownChannel, cfg.Notifier.Channel)
	}
}

// NewRenderer honours an explicit format and otherwise picks the one the
// channel displays best.
func NewRenderer(cfg *config.Config) (ports.Renderer, error) {
	format := strings.TrimSpace(cfg.Notifier.Format)
	if format == "" {
		format = defaultFormats[cfg.Notifier.Channel]
	}
	return render.New(format)
}

func (a *DigestApp) Run(ctx context.Context) {
	a.service.Run(ctx)
}

func (a *DigestApp) Stop(ctx context.Context) {
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.log.Warn("failed to close redis client", zap.Error(err))
		}
	}
	if a.tracer != nil {
		if err := a.tracer.Shutdown(ctx); err != nil {
			a.log.Warn("failed to shutdown tracer provider", zap.Error(err))
		}
	}
}
