package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	derr "github.com/ozzus/esports-digest/internal/domain/errors"
)

const (
	ChannelWxPusher   = "wxpusher"
	ChannelServerChan = "serverchan"
	ChannelTelegram   = "telegram"
	ChannelDiscord    = "discord"
	ChannelSlack      = "slack"
)

type Config struct {
	Env        string           `yaml:"env" env:"ENV" env-default:"local"`
	Jaeger     string           `yaml:"jaeger" env:"JAEGER"`
	Timezone   string           `yaml:"timezone" env:"TIMEZONE" env-default:"Asia/Shanghai"`
	Log        LogConfig        `yaml:"log"`
	Upstream   UpstreamConfig   `yaml:"upstream"`
	Notifier   NotifierConfig   `yaml:"notifier"`
	WxPusher   WxPusherConfig   `yaml:"wxpusher"`
	ServerChan ServerChanConfig `yaml:"serverchan"`
	Telegram   TelegramConfig   `yaml:"telegram"`
	Discord    DiscordConfig    `yaml:"discord"`
	Slack      SlackConfig      `yaml:"slack"`
	Redis      RedisConfig      `yaml:"redis"`
	Metrics    MetricsConfig    `yaml:"metrics"`
}

type LogConfig struct {
	Level string `yaml:"level" env:"LOG_LEVEL" env-default:"info"`
}

type UpstreamConfig struct {
	URL       string        `yaml:"url" env:"UPSTREAM_URL" env-default:"https://esports.op.gg/matches/graphql/__query__ListUpcomingMatchesBySerie"`
	UserAgent string        `yaml:"user_agent" env:"UPSTREAM_USER_AGENT" env-default:"Mozilla/5.0"`
	Timeout   time.Duration `yaml:"timeout" env:"UPSTREAM_TIMEOUT"`
}

type NotifierConfig struct {
	Channel string        `yaml:"channel" env:"NOTIFIER_CHANNEL" env-default:"wxpusher"`
	Format  string        `yaml:"format" env:"NOTIFIER_FORMAT"`
	Timeout time.Duration `yaml:"timeout" env:"NOTIFIER_TIMEOUT" env-default:"30s"`
}

type WxPusherConfig struct {
	BaseURL  string `yaml:"base_url" env:"WXPUSHER_BASE_URL" env-default:"https://wxpusher.zjiecode.com"`
	AppToken string `yaml:"app_token" env:"MY_TOKEN"`
	UID      string `yaml:"uid" env:"UID"`
	Summary  string `yaml:"summary" env:"WXPUSHER_SUMMARY" env-default:"LOL赛事信息"`
	URL      string `yaml:"url" env:"WXPUSHER_URL" env-default:"http://wxpusher.zjiecode.com"`
}

type ServerChanConfig struct {
	BaseURL string `yaml:"base_url" env:"SERVERCHAN_BASE_URL" env-default:"https://sctapi.ftqq.com"`
	SendKey string `yaml:"send_key" env:"SENDKEY"`
	Title   string `yaml:"title" env:"SERVERCHAN_TITLE" env-default:"今日LOL赛程"`
}

type TelegramConfig struct {
	Token  string `yaml:"token" env:"TELEGRAM_BOT_TOKEN"`
	ChatID int64  `yaml:"chat_id" env:"TELEGRAM_CHAT_ID"`
}

type DiscordConfig struct {
	Token     string `yaml:"token" env:"DISCORD_BOT_TOKEN"`
	ChannelID string `yaml:"channel_id" env:"DISCORD_CHANNEL_ID"`
}

type SlackConfig struct {
	WebhookURL string `yaml:"webhook_url" env:"SLACK_WEBHOOK_URL"`
}

type RedisConfig struct {
	Addr     string        `yaml:"addr" env:"REDIS_ADDR"`
	Password string        `yaml:"password" env:"REDIS_PASSWORD"`
	DB       int           `yaml:"db" env:"REDIS_DB" env-default:"0"`
	CacheTTL time.Duration `yaml:"cache_ttl" env:"REDIS_CACHE_TTL" env-default:"5m"`
}

// Enabled reports whether the upstream cache should be used at all.
func (c RedisConfig) Enabled() bool {
	return strings.TrimSpace(c.Addr) != "" && c.CacheTTL > 0
}

type MetricsConfig struct {
	PushgatewayURL string `yaml:"pushgateway_url" env:"PUSHGATEWAY_URL"`
	Job            string `yaml:"job" env:"PUSHGATEWAY_JOB" env-default:"esports-digest"`
}

// Validate checks that the secrets of the selected channel are present.
func (c *Config) Validate() error {
	switch c.Notifier.Channel {
	case ChannelWxPusher:
		if strings.TrimSpace(c.WxPusher.AppToken) == "" {
			return fmt.Errorf("%w: MY_TOKEN", derr.ErrMissingCredential)
		}
		if strings.TrimSpace(c.WxPusher.UID) == "" {
			return fmt.Errorf("%w: UID", derr.ErrMissingCredential)
		}
	case ChannelServerChan:
		if strings.TrimSpace(c.ServerChan.SendKey) == "" {
			return fmt.Errorf("%w: SENDKEY", derr.ErrMissingCredential)
		}
	case ChannelTelegram:
		if strings.TrimSpace(c.Telegram.Token) == "" {
			return fmt.Errorf("%w: TELEGRAM_BOT_TOKEN", derr.ErrMissingCredential)
		}
		if c.Telegram.ChatID == 0 {
			return fmt.Errorf("%w: TELEGRAM_CHAT_ID", derr.ErrMissingCredential)
		}
	case ChannelDiscord:
		if strings.TrimSpace(c.Discord.Token) == "" {
			return fmt.Errorf("%w: DISCORD_BOT_TOKEN", derr.ErrMissingCredential)
		}
		if strings.TrimSpace(c.Discord.ChannelID) == "" {
			return fmt.Errorf("%w: DISCORD_CHANNEL_ID", derr.ErrMissingCredential)
		}
	case ChannelSlack:
		if strings.TrimSpace(c.Slack.WebhookURL) == "" {
			return fmt.Errorf("%w: SLACK_WEBHOOK_URL", derr.ErrMissingCredential)
		}
	default:
		return fmt.Errorf("%w: %q", derr.ErrUnknownChannel, c.Notifier.Channel)
	}

	return nil
}

// MustLoad reads the config from CONFIG_PATH when set, otherwise from the
// environment alone.
func MustLoad() *Config {
	path := os.Getenv("CONFIG_PATH")
	if path == "" {
		return MustLoadFromEnv()
	}
	return MustLoadByPath(path)
}

func MustLoadByPath(configPath string) *Config {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		panic("config file does not exists: " + configPath)
	}

	var cfg Config
	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		panic("cannot read the config: " + err.Error())
	}

	return mustValidate(&cfg)
}

func MustLoadFromEnv() *Config {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		panic("cannot read the config from env: " + err.Error())
	}

	return mustValidate(&cfg)
}

func mustValidate(cfg *Config) *Config {
	cfg.Notifier.Channel = strings.ToLower(strings.TrimSpace(cfg.Notifier.Channel))
	if err := cfg.Validate(); err != nil {
		panic("invalid config: " + err.Error())
	}
	return cfg
}
