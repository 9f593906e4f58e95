package logger

import (
	"testing"

	"go.uber.org/zap/zapcore"

	"github.com/aliskhannn/hifz-quiz-bot/internal/config"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name      string
		cfg       config.Config
		wantDebug bool
		wantErr   bool
	}{
		{"local defaults to debug", config.Config{Env: "local"}, true, false},
		{"production defaults to info", config.Config{Env: "production"}, false, false},
		{"explicit level", config.Config{Env: "local", LogLevel: "warn"}, false, false},
		{"invalid level", config.Config{Env: "local", LogLevel: "loud"}, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lg, err := New(&tt.cfg)
			if (err != nil) != tt.wantErr {
				t.Fatalf("New() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				return
			}
			if got := lg.Core().Enabled(zapcore.DebugLevel); got != tt.wantDebug {
				t.Errorf("debug enabled = %v, want %v", got, tt.wantDebug)
			}
		})
	}
}
