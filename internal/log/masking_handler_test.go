package log

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

// TestMaskingHandler tests credential masking in log output.
func TestMaskingHandler(t *testing.T) {
	t.Parallel()

	t.Run("masks credential-named keys", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(NewMaskingHandler(slog.NewTextHandler(&buf, nil)))

		logger.Info("configured", "api_key", "super-secret-value", "source", "TikTok")

		output := buf.String()
		if strings.Contains(output, "super-secret-value") {
			t.Error("credential value leaked into log output")
		}
		if !strings.Contains(output, MaskValue) {
			t.Error("expected masked value in output")
		}
		if !strings.Contains(output, "TikTok") {
			t.Error("non-sensitive attribute should pass through")
		}
	})

	t.Run("redacts credential query parameters in URLs", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(NewMaskingHandler(slog.NewTextHandler(&buf, nil)))

		logger.Info("fetched",
			"url", "https://serpapi.com/search?q=tiktok&api_key=abc123&num=20",
		)

		output := buf.String()
		if strings.Contains(output, "abc123") {
			t.Error("api key leaked into log output")
		}
		if !strings.Contains(output, "q=tiktok") {
			t.Error("rest of the URL should stay readable")
		}
	})

	t.Run("masks attributes inside groups", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(NewMaskingHandler(slog.NewTextHandler(&buf, nil)))

		logger.Info("request",
			slog.Group("client", slog.String("token", "tok-1234")),
		)

		if strings.Contains(buf.String(), "tok-1234") {
			t.Error("grouped credential leaked into log output")
		}
	})

	t.Run("plain links are untouched", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(NewMaskingHandler(slog.NewTextHandler(&buf, nil)))

		link := "https://www.tiktok.com/@jane.doe/video/12345"
		logger.Info("stored", "link", link)

		if !strings.Contains(buf.String(), link) {
			t.Error("ordinary link should pass through unmodified")
		}
	})
}

// TestNewLogger tests level selection.
func TestNewLogger(t *testing.T) {
	t.Parallel()

	t.Run("default level suppresses debug", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := NewLogger(&buf, false)

		logger.Debug("hidden")
		logger.Info("also hidden")
		logger.Warn("visible")

		output := buf.String()
		if strings.Contains(output, "hidden") {
			t.Error("debug/info output should be suppressed")
		}
		if !strings.Contains(output, "visible") {
			t.Error("warnings should be logged")
		}
	})

	t.Run("verbose level includes debug", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := NewLogger(&buf, true)

		logger.Debug("detail")

		if !strings.Contains(buf.String(), "detail") {
			t.Error("verbose logger should emit debug output")
		}
	})
}
