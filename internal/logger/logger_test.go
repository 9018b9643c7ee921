package logger

import (
	"bytes"
	"strings"
	"testing"
)

func TestNewLogger_Levels(t *testing.T) {
	cases := []struct {
		name      string
		verbose   bool
		levelEnv  string
		wantDebug bool
	}{
		{name: "default info", wantDebug: false},
		{name: "verbose flag", verbose: true, wantDebug: true},
		{name: "env debug", levelEnv: "DEBUG", wantDebug: true},
		{name: "env other", levelEnv: "warn", wantDebug: false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer
			l := newLogger(&buf, tc.verbose, tc.levelEnv, "")
			l.Debug("debug line")
			if got := strings.Contains(buf.String(), "debug line"); got != tc.wantDebug {
				t.Fatalf("expected debug output %v, got %q", tc.wantDebug, buf.String())
			}
		})
	}
}

func TestNewLogger_JSONFormat(t *testing.T) {
	var buf bytes.Buffer
	l := newLogger(&buf, false, "", "json")
	l.Info("saved job", "label", "com.example.test")

	out := buf.String()
	if !strings.HasPrefix(out, "{") || !strings.Contains(out, `"label":"com.example.test"`) {
		t.Fatalf("expected JSON record, got %q", out)
	}
}
