package nakama

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"testing"

	"github.com/heroiclabs/nakama-common/runtime"

	"guandan/internal/config"
	"guandan/internal/domain"
	"guandan/internal/ports"
)

// noopLogger implements runtime.Logger for tests that only need to satisfy the interface.
type noopLogger struct{}

func (noopLogger) Debug(string, ...interface{}) {}
func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}
func (noopLogger) WithField(string, interface{}) runtime.Logger {
	return noopLogger{}
}
func (noopLogger) WithFields(map[string]interface{}) runtime.Logger {
	return noopLogger{}
}
func (noopLogger) Fields() map[string]interface{} {
	return nil
}

// recordingInitializer captures RPC registrations; other Initializer methods are not used.
type recordingInitializer struct {
	runtime.Initializer
	rpcs map[string]rpcHandler
}

func (r *recordingInitializer) RegisterRpc(id string, fn func(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error)) error {
	if r.rpcs == nil {
		r.rpcs = make(map[string]rpcHandler)
	}
	r.rpcs[id] = fn
	return nil
}

// fixedRecognizer returns the same cards for every image.
type fixedRecognizer struct {
	cards []domain.Card
	err   error
}

func (f fixedRecognizer) Recognize(ctx context.Context, imageRef string) ([]domain.Card, error) {
	return f.cards, f.err
}

// blockingRecognizer signals started and then waits for release before answering.
type blockingRecognizer struct {
	cards   []domain.Card
	started chan struct{}
	release chan struct{}
}

func (b blockingRecognizer) Recognize(ctx context.Context, imageRef string) ([]domain.Card, error) {
	close(b.started)
	select {
	case <-b.release:
		return b.cards, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func newTestModule(t *testing.T, recognizer ports.RecognizerPort) *Module {
	t.Helper()
	cfg := config.Default()
	cfg.Token.Secret = "test-secret"
	m, err := NewModule(cfg, recognizer)
	if err != nil {
		t.Fatalf("new module: %v", err)
	}
	return m
}

func userCtx(userID string) context.Context {
	return context.WithValue(context.Background(), runtime.RUNTIME_CTX_USER_ID, userID)
}

func mustJSON(t *testing.T, v any) string {
	t.Helper()
	data, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return string(data)
}

func decodeInto(t *testing.T, raw string, v any) {
	t.Helper()
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		t.Fatalf("unmarshal %q: %v", raw, err)
	}
}

func errorCode(t *testing.T, err error) int {
	t.Helper()
	var rtErr *runtime.Error
	if !errors.As(err, &rtErr) {
		t.Fatalf("err = %v (%T), want *runtime.Error", err, err)
	}
	return rtErr.Code
}
