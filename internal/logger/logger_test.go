package logger

import (
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestNew_IsNop(t *testing.T) {
	l := New()
	if l.Log == nil {
		t.Fatal("expected non-nil logger")
	}
	if l.Log.Core().Enabled(zapcore.ErrorLevel) {
		t.Error("expected no-op logger before Init")
	}
}

func TestInit_Levels(t *testing.T) {
	cases := []struct {
		level   string
		enabled zapcore.Level
		wantErr bool
	}{
		{"debug", zapcore.DebugLevel, false},
		{"Info", zapcore.InfoLevel, false},
		{"warn", zapcore.WarnLevel, false},
		{"nonsense", zapcore.InfoLevel, true},
	}

	for _, tc := range cases {
		t.Run(tc.level, func(t *testing.T) {
			l := New()
			err := l.Init(tc.level)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("Init(%q) expected error", tc.level)
				}
				return
			}
			if err != nil {
				t.Fatalf("Init(%q) error: %v", tc.level, err)
			}
			if !l.Log.Core().Enabled(tc.enabled) {
				t.Errorf("Init(%q): level %v not enabled", tc.level, tc.enabled)
			}
		})
	}
}
