package state

import (
	"context"
	"log"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"bylaws/cache"
	"bylaws/config"
)

func TestEnvFromContext(t *testing.T) {
	t.Run("valid context", func(t *testing.T) {
		env := EnvFromContext(ContextWithEnv(context.Background()))
		if env == nil {
			t.Fatal("EnvFromContext() returned nil")
		}
		if env.start.IsZero() {
			t.Error("start time not set")
		}
		if env.Cache != nil {
			t.Error("cache must be disabled until configured")
		}
	})

	t.Run("panic on missing env", func(t *testing.T) {
		defer func() {
			if r := recover(); r == nil {
				t.Error("expected panic when env not in context")
			}
		}()
		EnvFromContext(context.Background())
	})
}

func TestLocalEnv_Uptime(t *testing.T) {
	env := &LocalEnv{start: time.Now().Add(-time.Minute)}
	if got := env.Uptime(); got < time.Minute {
		t.Errorf("Uptime() = %v, want at least 1m", got)
	}
}

func TestLocalEnv_StdLog(t *testing.T) {
	t.Run("redirected", func(t *testing.T) {
		core, logs := observer.New(zap.InfoLevel)
		env := &LocalEnv{Log: zap.New(core)}

		env.RedirectStdLog()
		log.Print("preview listener closed")
		env.RestoreStdLog()
		log.Print("not captured")

		if logs.Len() != 1 {
			t.Fatalf("captured %d entries, want 1", logs.Len())
		}
		if msg := logs.All()[0].Message; msg != "preview listener closed" {
			t.Errorf("message = %q", msg)
		}
	})

	t.Run("nil logger", func(t *testing.T) {
		env := &LocalEnv{}
		env.RedirectStdLog()
		if env.restoreStdLog != nil {
			t.Error("restoreStdLog must stay nil without logger")
		}
		env.RestoreStdLog()
	})
}

func TestLocalEnv_Shared(t *testing.T) {
	ctx := ContextWithEnv(context.Background())

	env := EnvFromContext(ctx)
	env.Cfg = &config.Config{Version: 1}
	env.Cache = cache.NewMemory(2)
	env.NoDirs = true

	again := EnvFromContext(ctx)
	if again != env {
		t.Fatal("context must carry a single environment")
	}
	if again.Cfg.Version != 1 || !again.NoDirs {
		t.Errorf("settings lost: %+v", again)
	}
	if _, ok, err := again.Cache.Get(cache.Key{}); ok || err != nil {
		t.Errorf("Get() on empty cache = %v, %v", ok, err)
	}
}
