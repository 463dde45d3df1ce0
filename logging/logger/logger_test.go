package logger

import (
	"context"
	"testing"
	"time"

	"github.com/ncobase/ncursor/ctxutil"
	"github.com/ncobase/ncursor/logging/logger/config"
	"github.com/sirupsen/logrus"
)

type stubHook struct {
	fired int
}

func (h *stubHook) Levels() []logrus.Level {
	return []logrus.Level{logrus.InfoLevel}
}

func (h *stubHook) Fire(*logrus.Entry) error {
	h.fired++
	return nil
}

func TestHookFactoryRegistry(t *testing.T) {
	t.Run("BuiltinFactories", func(t *testing.T) {
		for _, hookType := range []HookType{HookElasticsearch, HookOpenSearch, HookMeilisearch} {
			if _, ok := GetHookFactory(hookType); !ok {
				t.Errorf("Expected factory for %q to be registered", hookType)
			}
		}
	})

	t.Run("UnknownType", func(t *testing.T) {
		if _, ok := GetHookFactory(HookType("graphite")); ok {
			t.Error("Expected no factory for unregistered type")
		}
	})

	t.Run("RegisterCustom", func(t *testing.T) {
		custom := HookType("custom-test")
		RegisterHookFactory(custom, func(cfg *config.Config) (logrus.Hook, error) {
			return &stubHook{}, nil
		})

		if _, ok := GetHookFactory(custom); !ok {
			t.Fatal("Expected custom factory to be registered")
		}

		found := false
		for _, ht := range GetRegisteredHooks() {
			if ht == custom {
				found = true
			}
		}
		if !found {
			t.Error("Expected GetRegisteredHooks to include custom type")
		}
	})
}

func TestPrepareLogDocument(t *testing.T) {
	entry := &logrus.Entry{
		Time:    time.Date(2025, 3, 9, 12, 0, 0, 0, time.UTC),
		Level:   logrus.WarnLevel,
		Message: "window short",
		Data: logrus.Fields{
			"index": "articles",
			"level": "spoofed",
		},
	}

	doc := prepareLogDocument(entry)

	if got, want := doc["level"], "warning"; got != want {
		t.Errorf("doc[level] = %v, want %v", got, want)
	}
	if got, want := doc["message"], "window short"; got != want {
		t.Errorf("doc[message] = %v, want %v", got, want)
	}
	if got, want := doc["index"], "articles"; got != want {
		t.Errorf("doc[index] = %v, want %v", got, want)
	}
	if _, ok := doc["@timestamp"]; !ok {
		t.Error("Expected @timestamp field")
	}
}

func TestEntryFromContext(t *testing.T) {
	l := &Logger{Logger: logrus.New()}
	l.SetVersion("1.2.3")

	ctx := ctxutil.SetTraceID(context.Background(), "trace-42")
	entry := l.entryFromContext(ctx)

	if got, want := entry.Data[traceKey], "trace-42"; got != want {
		t.Errorf("entry trace id = %v, want %v", got, want)
	}
	if got, want := entry.Data[VersionKey], "1.2.3"; got != want {
		t.Errorf("entry version = %v, want %v", got, want)
	}
}

func TestAddHookDeduplicates(t *testing.T) {
	l := &Logger{Logger: logrus.New()}
	hook := &stubHook{}

	l.AddHook(hook)
	l.AddHook(hook)

	if got := len(l.Hooks[logrus.InfoLevel]); got != 1 {
		t.Errorf("Hook count = %d, want 1", got)
	}
}

func TestInitWithoutEngines(t *testing.T) {
	l := &Logger{Logger: logrus.New()}
	cleanup, err := l.Init(&config.Config{Level: 4, Format: "json", Output: "stderr"})
	if err != nil {
		t.Fatalf("Failed to init logger: %v", err)
	}
	defer cleanup()

	if got, want := l.GetLevel(), logrus.InfoLevel; got != want {
		t.Errorf("Level = %v, want %v", got, want)
	}
}
