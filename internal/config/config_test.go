package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	derr "github.com/ozzus/esports-digest/internal/domain/errors"
)

func TestValidate_MissingCredentialPerChannel(t *testing.T) {
	cases := []struct {
		name string
		cfg  Config
	}{
		{name: "wxpusher without token", cfg: Config{Notifier: NotifierConfig{Channel: ChannelWxPusher}, WxPusher: WxPusherConfig{UID: "UID_1"}}},
		{name: "wxpusher without uid", cfg: Config{Notifier: NotifierConfig{Channel: ChannelWxPusher}, WxPusher: WxPusherConfig{AppToken: "AT_1"}}},
		{name: "serverchan without key", cfg: Config{Notifier: NotifierConfig{Channel: ChannelServerChan}}},
		{name: "telegram without chat", cfg: Config{Notifier: NotifierConfig{Channel: ChannelTelegram}, Telegram: TelegramConfig{Token: "t"}}},
		{name: "discord without channel", cfg: Config{Notifier: NotifierConfig{Channel: ChannelDiscord}, Discord: DiscordConfig{Token: "t"}}},
		{name: "slack without webhook", cfg: Config{Notifier: NotifierConfig{Channel: ChannelSlack}}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			if !errors.Is(err, derr.ErrMissingCredential) {
				t.Fatalf("expected ErrMissingCredential, got %v", err)
			}
		})
	}
}

func TestValidate_UnknownChannel(t *testing.T) {
	cfg := Config{Notifier: NotifierConfig{Channel: "pigeon"}}
	if err := cfg.Validate(); !errors.Is(err, derr.ErrUnknownChannel) {
		t.Fatalf("expected ErrUnknownChannel, got %v", err)
	}
}

func TestValidate_Complete(t *testing.T) {
	cfg := Config{
		Notifier: NotifierConfig{Channel: ChannelWxPusher},
		WxPusher: WxPusherConfig{AppToken: "AT_1", UID: "UID_1"},
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
}

func TestMustLoadFromEnv_Defaults(t *testing.T) {
	t.Setenv("NOTIFIER_CHANNEL", "ServerChan")
	t.Setenv("SENDKEY", "SCT123")

	cfg := MustLoadFromEnv()
	if cfg.Notifier.Channel != ChannelServerChan {
		t.Fatalf("expected channel to be normalized, got %q", cfg.Notifier.Channel)
	}
	if cfg.Timezone != "Asia/Shanghai" {
		t.Fatalf("unexpected timezone default %q", cfg.Timezone)
	}
	if cfg.Upstream.UserAgent != "Mozilla/5.0" {
		t.Fatalf("unexpected user agent default %q", cfg.Upstream.UserAgent)
	}
	if cfg.Upstream.Timeout != 0 {
		t.Fatalf("expected no upstream timeout override, got %v", cfg.Upstream.Timeout)
	}
	if cfg.Notifier.Timeout != 30*time.Second {
		t.Fatalf("expected bounded notifier timeout, got %v", cfg.Notifier.Timeout)
	}
	if cfg.Redis.Enabled() {
		t.Fatal("expected redis cache disabled without addr")
	}
}

func TestMustLoadFromEnv_PanicsWithoutSecrets(t *testing.T) {
	t.Setenv("NOTIFIER_CHANNEL", ChannelWxPusher)
	t.Setenv("MY_TOKEN", "")
	t.Setenv("UID", "")

	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on missing credentials")
		}
	}()
	MustLoadFromEnv()
}

func TestMustLoadByPath_EnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "local.yaml")
	body := []byte("notifier:\n  channel: slack\nslack:\n  webhook_url: https://hooks.slack.test/file\nlog:\n  level: debug\n")
	if err := os.WriteFile(path, body, 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("SLACK_WEBHOOK_URL", "https://hooks.slack.test/env")

	cfg := MustLoadByPath(path)
	if cfg.Slack.WebhookURL != "https://hooks.slack.test/env" {
		t.Fatalf("expected env to win, got %q", cfg.Slack.WebhookURL)
	}
	if cfg.Log.Level != "debug" {
		t.Fatalf("expected level from file, got %q", cfg.Log.Level)
	}
}
