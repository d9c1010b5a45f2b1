package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"
	"time"

	"github.com/muhammadnuman-eng/school-managment-crm-sub001/pkg/api"
)

func TestErrorCtx_EnrichesAndOutputsJSON(t *testing.T) {
	// Buffer-backed JSON handler so the output can be inspected
	var buf bytes.Buffer
	cfg := DefaultConfig()
	cfg.Format = FormatJSON
	cfg.Component = "test-component"
	cfg.TimeFormat = time.RFC3339

	level := parseLogLevel(cfg.Level)
	handler := slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: level})
	l := &Logger{Logger: slog.New(handler), config: cfg}

	ctx := context.Background()
	ctx = WithRequestID(ctx, "req-123")
	ctx = WithTenantID(ctx, "greenfield-academy")
	ctx = WithOperation(ctx, "hostels.list_rooms")

	apiErr := api.NewError(500, api.CodeHTTPError, "backend unavailable", nil)
	l.ErrorCtx(ctx, "operation failed", apiErr, slog.String("extra", "value"))

	var entry map[string]any
	if err := json.NewDecoder(&buf).Decode(&entry); err != nil {
		t.Fatalf("failed to decode log output: %v", err)
	}

	wantKeys := []string{
		"error",
		"error_code",
		"status_code",
		"retryable",
		"request_id",
		"tenant_id",
		"operation",
		"component",
		"extra",
		"msg",
	}
	for _, k := range wantKeys {
		if _, ok := entry[k]; !ok {
			t.Errorf("expected key %q in log output, got %v", k, entry)
		}
	}

	if entry["error_code"] != string(api.CodeHTTPError) {
		t.Errorf("expected error_code %s, got %v", api.CodeHTTPError, entry["error_code"])
	}
	if entry["retryable"] != true {
		t.Errorf("expected retryable true, got %v", entry["retryable"])
	}
}

func TestWithContext_SkipsEmptyValues(t *testing.T) {
	var buf bytes.Buffer
	cfg := DefaultConfig()
	cfg.Format = FormatJSON

	handler := slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo})
	l := &Logger{Logger: slog.New(handler), config: cfg}

	l.WithContext(context.Background()).Info("plain message")

	var entry map[string]any
	if err := json.NewDecoder(&buf).Decode(&entry); err != nil {
		t.Fatalf("failed to decode log output: %v", err)
	}

	if _, ok := entry["request_id"]; ok {
		t.Error("did not expect request_id for an empty context")
	}
	if entry["component"] != "console" {
		t.Errorf("expected component console, got %v", entry["component"])
	}
}
