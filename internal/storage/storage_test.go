package storage

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/eugenenazirov/binpack/internal/experiment"
)

var (
	_ Storage         = (*MemoryStorage)(nil)
	_ Storage         = (*PostgresStorage)(nil)
	_ experiment.Sink = (*MemoryStorage)(nil)
)

func TestMemoryStorageKeepsInsertionOrder(t *testing.T) {
	t.Parallel()

	store := NewMemoryStorage()
	ctx := context.Background()
	for i := 0; i < 3; i++ {
		if err := store.SaveResult(ctx, experiment.Result{Instance: fmt.Sprintf("u_%02d", i), BinsUsed: i}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	got, err := store.ListResults(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 results, got %d", len(got))
	}
	for i, r := range got {
		if want := fmt.Sprintf("u_%02d", i); r.Instance != want {
			t.Fatalf("expected %s at position %d, got %s", want, i, r.Instance)
		}
	}
}

func TestMemoryStorageReturnsCopies(t *testing.T) {
	t.Parallel()

	store := NewMemoryStorage()
	ctx := context.Background()
	_ = store.SaveResult(ctx, experiment.Result{Instance: "a"})

	got, _ := store.ListResults(ctx)
	got[0].Instance = "mutated"

	again, _ := store.ListResults(ctx)
	if again[0].Instance != "a" {
		t.Fatalf("expected defensive copy, got %v", again)
	}
}

func TestMemoryStorageEmpty(t *testing.T) {
	t.Parallel()

	got, err := NewMemoryStorage().ListResults(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", got)
	}
}

func TestMemoryStorageConcurrentAccess(t *testing.T) {
	store := NewMemoryStorage()
	ctx := context.Background()
	var wg sync.WaitGroup

	for i := 0; i < 32; i++ {
		wg.Add(2)

		go func(offset int) {
			defer wg.Done()
			if err := store.SaveResult(ctx, experiment.Result{BinsUsed: offset}); err != nil {
				t.Errorf("SaveResult failed: %v", err)
			}
		}(i)

		go func() {
			defer wg.Done()
			if _, err := store.ListResults(ctx); err != nil {
				t.Errorf("ListResults failed: %v", err)
			}
		}()
	}

	wg.Wait()

	got, err := store.ListResults(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 32 {
		t.Fatalf("expected 32 results, got %d", len(got))
	}
}

func TestOpenPostgresFailsWithoutServer(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	store, err := OpenPostgres(ctx, "postgres://binpack@127.0.0.1:1/binpack?sslmode=disable&connect_timeout=1")
	if err == nil {
		_ = store.Close()
		t.Fatalf("expected connection error")
	}
}
