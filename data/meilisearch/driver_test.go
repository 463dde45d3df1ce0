package meilisearch_test

import (
	"context"
	"testing"

	"github.com/ncobase/ncursor/data"
	"github.com/ncobase/ncursor/data/config"
	_ "github.com/ncobase/ncursor/data/meilisearch" // Register driver
	msclient "github.com/ncobase/ncursor/data/meilisearch/client"
	"github.com/ncobase/ncursor/data/search"
)

func TestDriverRegistration(t *testing.T) {
	driver, err := data.GetSearchDriver("meilisearch")
	if err != nil {
		t.Fatalf("GetSearchDriver() error = %v", err)
	}

	if got, want := driver.Name(), "meilisearch"; got != want {
		t.Errorf("driver.Name() = %q, want %q", got, want)
	}
}

func TestDriverConnect(t *testing.T) {
	driver, err := data.GetSearchDriver("meilisearch")
	if err != nil {
		t.Fatalf("GetSearchDriver() error = %v", err)
	}

	t.Run("EmptyHost", func(t *testing.T) {
		cfg := &config.Meilisearch{}

		_, err := driver.Connect(context.Background(), cfg)
		if err == nil {
			t.Error("Expected error for empty host, got nil")
		}
	})

	t.Run("InvalidConfig", func(t *testing.T) {
		_, err := driver.Connect(context.Background(), "invalid")
		if err == nil {
			t.Error("Expected error for invalid config type, got nil")
		}
	})
}

func TestAdapterFactory(t *testing.T) {
	factory, err := search.GetAdapterFactory(search.Meilisearch)
	if err != nil {
		t.Fatalf("GetAdapterFactory() error = %v", err)
	}

	t.Run("InvalidConnectionType", func(t *testing.T) {
		_, err := factory("invalid")
		if err == nil {
			t.Error("Expected error for invalid connection type, got nil")
		}
	})

	t.Run("BuildsAdapter", func(t *testing.T) {
		cli, err := msclient.NewClient("", "")
		if err != nil {
			t.Fatalf("NewClient() error = %v", err)
		}

		adapter, err := factory(cli)
		if err != nil {
			t.Fatalf("factory() error = %v", err)
		}
		if adapter.Type() != search.Meilisearch {
			t.Errorf("adapter.Type() = %q, want %q", adapter.Type(), search.Meilisearch)
		}
	})
}
