package main

import (
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestParseLogLevel(t *testing.T) {
	cases := map[string]zapcore.Level{
		"debug":     zapcore.DebugLevel,
		" WARNING ": zapcore.WarnLevel,
		"warn":      zapcore.WarnLevel,
		"error":     zapcore.ErrorLevel,
		"":          zapcore.InfoLevel,
		"verbose":   zapcore.InfoLevel,
	}

	for in, want := range cases {
		if got := parseLogLevel(in); got != want {
			t.Fatalf("parseLogLevel(%q) = %v, want %v", in, got, want)
		}
	}
}
