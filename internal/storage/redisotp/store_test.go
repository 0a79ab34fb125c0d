package redisotp

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

type stubRedis struct {
	setKey   string
	setValue any
	setTTL   time.Duration
	setErr   error

	evalKeys []string
	evalArgs []any
	evalN    int64
	evalErr  error

	pingErr error
}

func (s *stubRedis) Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd {
	s.setKey = key
	s.setValue = value
	s.setTTL = expiration
	return redis.NewStatusResult("OK", s.setErr)
}

func (s *stubRedis) Eval(ctx context.Context, script string, keys []string, args ...any) *redis.Cmd {
	s.evalKeys = keys
	s.evalArgs = args
	return redis.NewCmdResult(s.evalN, s.evalErr)
}

func (s *stubRedis) Ping(ctx context.Context) *redis.StatusCmd {
	return redis.NewStatusResult("PONG", s.pingErr)
}

func newStubStore() (*Store, *stubRedis) {
	stub := &stubRedis{}
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	return &Store{client: stub, logger: logger}, stub
}

func TestSave(t *testing.T) {
	store, stub := newStubStore()

	if err := store.Save(context.Background(), "buyer@example.com", "123456", 10*time.Minute); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stub.setKey != "otp:buyer@example.com" {
		t.Fatalf("unexpected key: %s", stub.setKey)
	}
	if stub.setValue != "123456" {
		t.Fatalf("unexpected value: %v", stub.setValue)
	}
	if stub.setTTL != 10*time.Minute {
		t.Fatalf("unexpected ttl: %s", stub.setTTL)
	}
}

func TestSaveError(t *testing.T) {
	store, stub := newStubStore()
	stub.setErr = errors.New("redis down")

	if err := store.Save(context.Background(), "buyer@example.com", "123456", time.Minute); err == nil {
		t.Fatal("expected error")
	}
}

func TestConsume(t *testing.T) {
	cases := []struct {
		name     string
		deleted  int64
		err      error
		want     bool
		wantErr  bool
	}{
		{name: "matching code", deleted: 1, want: true},
		{name: "wrong or expired code", deleted: 0, want: false},
		{name: "redis error", err: errors.New("boom"), wantErr: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			store, stub := newStubStore()
			stub.evalN = tc.deleted
			stub.evalErr = tc.err

			ok, err := store.Consume(context.Background(), "buyer@example.com", "123456")
			if tc.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if ok != tc.want {
				t.Fatalf("expected %v, got %v", tc.want, ok)
			}
			if len(stub.evalKeys) != 1 || stub.evalKeys[0] != "otp:buyer@example.com" {
				t.Fatalf("unexpected keys: %v", stub.evalKeys)
			}
			if len(stub.evalArgs) != 1 || stub.evalArgs[0] != "123456" {
				t.Fatalf("unexpected args: %v", stub.evalArgs)
			}
		})
	}
}

func TestHealthCheck(t *testing.T) {
	store, stub := newStubStore()
	if err := store.HealthCheck(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	stub.pingErr = errors.New("down")
	if err := store.HealthCheck(context.Background()); err == nil {
		t.Fatal("expected error")
	}
}

func TestClose(t *testing.T) {
	store, _ := newStubStore()
	if err := store.Close(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	called := false
	store.closer = func() error { called = true; return nil }
	if err := store.Close(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !called {
		t.Fatal("expected closer call")
	}
}
