package commands

import (
	"context"
	"errors"
	"testing"
	"time"

	goerrors "github.com/goliatone/go-errors"

	"github.com/govkit/servicecatalog/pkg/interfaces"
)

type testMessage struct{}

func (testMessage) Type() string { return "catalog.test.message" }

func (testMessage) Validate() error { return nil }

type invalidMessage struct{}

func (invalidMessage) Type() string { return "catalog.test.invalid" }

func (invalidMessage) Validate() error {
	return validationError()
}

func validationError() error {
	return errors.New("invalid")
}

func TestHandlerExecuteSuccess(t *testing.T) {
	called := false
	h := NewHandler[testMessage](func(ctx context.Context, msg testMessage) error {
		called = true
		return nil
	})

	if err := h.Execute(context.Background(), testMessage{}); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if !called {
		t.Fatal("expected handler to be invoked")
	}
}

func TestHandlerValidationShortCircuitsExecution(t *testing.T) {
	called := false
	h := NewHandler[invalidMessage](func(ctx context.Context, msg invalidMessage) error {
		called = true
		return nil
	})

	err := h.Execute(context.Background(), invalidMessage{})
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !goerrors.IsCategory(err, goerrors.CategoryValidation) {
		t.Fatalf("expected validation category, got %v", err)
	}
	if called {
		t.Fatal("expected handler not to run when validation fails")
	}
}

func TestHandlerContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	h := NewHandler[testMessage](func(ctx context.Context, msg testMessage) error {
		called = true
		return nil
	})

	err := h.Execute(ctx, testMessage{})
	if err == nil {
		t.Fatal("expected context cancellation error")
	}
	if !goerrors.IsCategory(err, goerrors.CategoryCommand) {
		t.Fatalf("expected command category, got %v", err)
	}
	if called {
		t.Fatal("expected handler not to run when context is cancelled")
	}
}

func TestHandlerWrapsExecutionError(t *testing.T) {
	execErr := errors.New("boom")
	h := NewHandler[testMessage](func(ctx context.Context, msg testMessage) error {
		return execErr
	})

	err := h.Execute(context.Background(), testMessage{})
	if err == nil {
		t.Fatal("expected wrapped execution error")
	}
	if !goerrors.IsCategory(err, goerrors.CategoryCommand) {
		t.Fatalf("expected command category, got %v", err)
	}
	if !goerrors.HasCategory(err, goerrors.CategoryCommand) {
		t.Fatalf("expected command category to propagate, got %v", err)
	}
}

func TestHandlerEmitsTelemetry(t *testing.T) {
	var observed TelemetryInfo
	h := NewHandler[testMessage](func(ctx context.Context, msg testMessage) error {
		return nil
	},
		WithOperation[testMessage]("test.operation"),
		WithMessageFields[testMessage](func(testMessage) map[string]any {
			return map[string]any{"extra": "field"}
		}),
		WithTelemetry[testMessage](func(_ context.Context, _ testMessage, info TelemetryInfo) {
			observed = info
		}),
	)

	if err := h.Execute(context.Background(), testMessage{}); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if observed.Status != TelemetryStatusSuccess {
		t.Fatalf("expected success status, got %q", observed.Status)
	}
	if observed.Operation != "test.operation" {
		t.Fatalf("expected operation in telemetry, got %q", observed.Operation)
	}
	if observed.Fields["extra"] != "field" {
		t.Fatalf("expected message fields in telemetry, got %v", observed.Fields)
	}
}

type fieldsRecordingLogger struct {
	fields   []map[string]any
	messages []string
}

func (r *fieldsRecordingLogger) Trace(string, ...any) {}
func (r *fieldsRecordingLogger) Debug(string, ...any) {}
func (r *fieldsRecordingLogger) Info(msg string, _ ...any) {
	r.messages = append(r.messages, msg)
}
func (r *fieldsRecordingLogger) Warn(string, ...any) {}
func (r *fieldsRecordingLogger) Error(msg string, _ ...any) {
	r.messages = append(r.messages, msg)
}
func (r *fieldsRecordingLogger) Fatal(string, ...any) {}

func (r *fieldsRecordingLogger) WithContext(context.Context) interfaces.Logger { return r }

func (r *fieldsRecordingLogger) WithFields(fields map[string]any) interfaces.Logger {
	copied := make(map[string]any, len(fields))
	for k, v := range fields {
		copied[k] = v
	}
	r.fields = append(r.fields, copied)
	return r
}

func TestDefaultTelemetryLogsOutcomeWithFields(t *testing.T) {
	rec := &fieldsRecordingLogger{}
	telemetry := DefaultTelemetry[testMessage](rec)

	telemetry(context.Background(), testMessage{}, TelemetryInfo{
		Command:   "catalog.test.message",
		Operation: "test.operation",
		Fields:    map[string]any{"entity_id": "abc"},
		Duration:  5 * time.Millisecond,
		Status:    TelemetryStatusSuccess,
	})

	if len(rec.messages) != 1 || rec.messages[0] != "command.execute.success" {
		t.Fatalf("messages = %v, want success entry", rec.messages)
	}
	if len(rec.fields) != 1 || rec.fields[0]["entity_id"] != "abc" {
		t.Fatalf("fields = %v, want telemetry fields attached", rec.fields)
	}

	telemetry(context.Background(), testMessage{}, TelemetryInfo{
		Status: TelemetryStatusFailed,
		Error:  errors.New("boom"),
	})
	if len(rec.messages) != 2 || rec.messages[1] != "command.execute.failed" {
		t.Fatalf("messages = %v, want failure entry", rec.messages)
	}
}

func TestHandlerHonoursTimeoutOption(t *testing.T) {
	h := NewHandler[testMessage](func(ctx context.Context, msg testMessage) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(20 * time.Millisecond):
			return nil
		}
	}, WithTimeout[testMessage](10*time.Millisecond))

	err := h.Execute(context.Background(), testMessage{})
	if err == nil {
		t.Fatal("expected timeout error")
	}
	if !goerrors.IsCategory(err, goerrors.CategoryCommand) {
		t.Fatalf("expected command category for timeout, got %v", err)
	}
}
