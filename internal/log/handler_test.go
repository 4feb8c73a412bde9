package log

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestSafeHandlerRedactsSensitiveKeys(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		key   string
		value string
	}{
		{name: "cookie header", key: "Cookie", value: "session=abc123"},
		{name: "authorization header", key: "Authorization", value: "Bearer xyz"},
		{name: "password field", key: "password", value: "hunter2"},
		{name: "key containing token", key: "refresh_token", value: "tok-1"},
		{name: "key containing auth", key: "auth_header", value: "basic dXNlcg=="},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			logger := slog.New(NewSafeHandler(slog.NewTextHandler(&buf, nil)))

			logger.Info("request", tt.key, tt.value)

			out := buf.String()
			if strings.Contains(out, tt.value) {
				t.Errorf("log output contains sensitive value %q: %s", tt.value, out)
			}
			if !strings.Contains(out, MaskValue) {
				t.Errorf("log output missing mask %q: %s", MaskValue, out)
			}
		})
	}
}

func TestSafeHandlerTruncatesLongValues(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(NewSafeHandler(slog.NewTextHandler(&buf, nil)))

	body := strings.Repeat("x", MaxAttrLen*4)
	logger.Info("fetched", "body", body)

	out := buf.String()
	if strings.Contains(out, body) {
		t.Error("log output contains full oversized value")
	}
	if !strings.Contains(out, "...(truncated)") {
		t.Errorf("log output missing truncation marker: %s", out)
	}
}

func TestSafeHandlerKeepsNormalAttrs(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(NewSafeHandler(slog.NewTextHandler(&buf, nil)))

	logger.Info("analyzed", "url", "https://example.com", "words", 42)

	out := buf.String()
	if !strings.Contains(out, "https://example.com") {
		t.Errorf("log output missing url attr: %s", out)
	}
	if !strings.Contains(out, "words=42") {
		t.Errorf("log output missing words attr: %s", out)
	}
}

func TestSafeHandlerCleansGroups(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(NewSafeHandler(slog.NewTextHandler(&buf, nil)))

	logger.Info("request",
		slog.Group("headers",
			slog.String("Cookie", "session=abc"),
			slog.String("Accept", "text/html"),
		),
	)

	out := buf.String()
	if strings.Contains(out, "session=abc") {
		t.Errorf("group attr not redacted: %s", out)
	}
	if !strings.Contains(out, "text/html") {
		t.Errorf("non-sensitive group attr lost: %s", out)
	}
}

func TestSafeHandlerWithAttrs(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(NewSafeHandler(slog.NewTextHandler(&buf, nil)))

	logger.With("cookie", "session=abc").Info("request")

	out := buf.String()
	if strings.Contains(out, "session=abc") {
		t.Errorf("WithAttrs value not redacted: %s", out)
	}
}

func TestNewLoggerLevels(t *testing.T) {
	t.Parallel()

	t.Run("default level suppresses info", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := NewLogger(&buf, false)

		logger.Info("hidden")
		logger.Warn("shown")

		out := buf.String()
		if strings.Contains(out, "hidden") {
			t.Errorf("info message logged at warn level: %s", out)
		}
		if !strings.Contains(out, "shown") {
			t.Errorf("warn message missing: %s", out)
		}
	})

	t.Run("verbose enables debug", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := NewLogger(&buf, true)

		logger.Debug("detail")

		if !strings.Contains(buf.String(), "detail") {
			t.Errorf("debug message missing in verbose mode: %s", buf.String())
		}
	})
}
