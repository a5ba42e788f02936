package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	derr "github.com/ozzus/esports-digest/internal/domain/errors"
	"github.com/ozzus/esports-digest/internal/domain/models"
	"github.com/ozzus/esports-digest/internal/domain/ports"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	otelcodes "go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const metricsPushTimeout = 3 * time.Second

type DigestService struct {
	log      *zap.Logger
	source   ports.MatchSource
	cache    ports.MatchCache
	cacheTTL time.Duration
	filter   ports.DigestFilter
	renderer ports.Renderer
	channel  ports.Channel
	reporter ports.Reporter
	metrics  ports.RunMetrics
}

type Option func(*DigestService)

// WithCache puts a cache in front of the source. A nil interface or a
// non-positive ttl leaves the service uncached. Callers holding a concrete
// pointer must not pass it when it is nil.
func WithCache(cache ports.MatchCache, ttl time.Duration) Option {
	return func(s *DigestService) {
		if cache == nil || ttl <= 0 {
			return
		}
		s.cache = cache
		s.cacheTTL = ttl
	}
}

func WithMetrics(metrics ports.RunMetrics) Option {
	return func(s *DigestService) {
		s.metrics = metrics
	}
}

func NewDigestService(
	log *zap.Logger,
	source ports.MatchSource,
	filter ports.DigestFilter,
	renderer ports.Renderer,
	channel ports.Channel,
	reporter ports.Reporter,
	opts ...Option,
) *DigestService {
	if log == nil {
		log = zap.NewNop()
	}

	s := &DigestService{
		log:      log,
		source:   source,
		filter:   filter,
		renderer: renderer,
		channel:  channel,
		reporter: reporter,
	}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Run executes one fetch, filter, render and send pass. Every runtime fault
// is logged and absorbed here.
func (s *DigestService) Run(ctx context.Context) {
	const op = "service.Run"
	tracer := otel.Tracer("esports-digest/service")
	ctx, span := tracer.Start(ctx, op)
	defer span.End()

	runID := uuid.NewString()
	span.SetAttributes(
		attribute.String("digest.run_id", runID),
		attribute.String("digest.channel", s.channel.Name()),
	)

	logger := s.log.With(
		zap.String("op", op),
		zap.String("run_id", runID),
		zap.String("channel", s.channel.Name()),
	)
	defer s.pushMetrics(ctx, logger)

	raw := s.fetch(ctx, logger)

	digest := s.filter.Today(raw)
	s.observeDigest(digest.Count())
	span.SetAttributes(
		attribute.Int("digest.upstream_count", len(raw)),
		attribute.Int("digest.today_count", digest.Count()),
	)

	if digest.Empty() {
		logger.Info("no matches today, nothing to send", zap.Int("upstream_count", len(raw)))
		span.SetStatus(otelcodes.Ok, "empty")
		return
	}

	content := s.renderer.Render(digest)
	if err := s.send(ctx, logger, content); err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, "delivery failed")
		return
	}

	span.SetStatus(otelcodes.Ok, "ok")
	logger.Info("digest delivered",
		zap.String("date", digest.Date.Format(models.DateLayout)),
		zap.Int("groups", len(digest.Groups)),
		zap.Int("matches", digest.Count()),
	)
}

// fetch never fails: an upstream fault yields an empty list.
func (s *DigestService) fetch(ctx context.Context, logger *zap.Logger) []models.RawMatch {
	ctx, span := otel.Tracer("esports-digest/service").Start(ctx, "service.fetch",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(attribute.Bool("digest.cache_enabled", s.cache != nil)),
	)
	defer span.End()

	if s.cache != nil {
		cached, err := s.cache.GetUpcoming(ctx)
		if err == nil {
			logger.Debug("upcoming matches loaded from redis cache", zap.Int("count", len(cached)))
			span.AddEvent("digest.cache.hit")
			s.observeFetch(len(cached), nil)
			return cached
		}
		if errors.Is(err, derr.ErrCacheMiss) {
			span.AddEvent("digest.cache.miss")
		} else {
			logger.Warn("redis cache read failed", zap.Error(err))
			span.RecordError(err)
		}
	}

	matches, err := s.source.FetchUpcoming(ctx)
	if err != nil {
		logger.Error("fetch upcoming matches failed", zap.Error(err))
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, "fetch failed")
		s.observeFetch(0, err)
		if s.reporter != nil {
			s.reporter.FetchFailed(err)
		}
		return []models.RawMatch{}
	}

	logger.Debug("upcoming matches fetched from source", zap.Int("count", len(matches)))
	s.observeFetch(len(matches), nil)

	if s.cache != nil {
		if err := s.cache.SetUpcoming(ctx, matches, s.cacheTTL); err != nil {
			logger.Warn("redis cache write failed", zap.Error(err))
			span.RecordError(err)
		}
	}

	return matches
}

func (s *DigestService) send(ctx context.Context, logger *zap.Logger, content string) error {
	ctx, span := otel.Tracer("esports-digest/service").Start(ctx, "service.send",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(attribute.Int("digest.content_length", len(content))),
	)
	defer span.End()

	delivery, err := s.channel.Send(ctx, content)
	s.observeDelivery(err)
	if err != nil {
		logger.Error("send notification failed", zap.Error(err))
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, "send failed")
		if s.reporter != nil {
			s.reporter.Failed(s.channel.Name(), err)
		}
		return err
	}

	logger.Info("notification sent", zap.String("response", delivery.Response))
	if s.reporter != nil {
		s.reporter.Delivered(delivery)
	}
	return nil
}

func (s *DigestService) observeFetch(count int, err error) {
	if s.metrics != nil {
		s.metrics.ObserveFetch(count, err)
	}
}

func (s *DigestService) observeDigest(count int) {
	if s.metrics != nil {
		s.metrics.ObserveDigest(count)
	}
}

func (s *DigestService) observeDelivery(err error) {
	if s.metrics != nil {
		s.metrics.ObserveDelivery(s.channel.Name(), err)
	}
}

func (s *DigestService) pushMetrics(ctx context.Context, logger *zap.Logger) {
	if s.metrics == nil {
		return
	}
	// The run context may already be cancelled by a signal; the push still
	// gets a short bounded window.
	pushCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), metricsPushTimeout)
	defer cancel()

	if err := s.metrics.Push(pushCtx); err != nil {
		logger.Warn("metrics push failed", zap.Error(err))
	}
}
