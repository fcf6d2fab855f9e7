package blob

import (
	"context"
	"errors"
	"testing"
)

func TestMemoryStore_PutGetDelete(t *testing.T) {
	store := NewMemory()
	ctx := context.Background()

	url, err := store.Put(ctx, "orders/O1/invoice/1.pdf", []byte("%PDF-1.4 data"), "application/pdf")
	if err != nil {
		t.Fatalf("put: %v", err)
	}
	if url != "mem://orders/O1/invoice/1.pdf" {
		t.Fatalf("unexpected url: %s", url)
	}

	data, err := store.Get(ctx, url)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if string(data) != "%PDF-1.4 data" {
		t.Fatalf("unexpected payload: %q", data)
	}

	if err := store.Delete(ctx, url); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := store.Get(ctx, url); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
	if err := store.Delete(ctx, url); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second delete, got %v", err)
	}
}

func TestMemoryStore_GetCopiesPayload(t *testing.T) {
	store := NewMemory()
	ctx := context.Background()

	payload := []byte("original")
	url, err := store.Put(ctx, "k", payload, "")
	if err != nil {
		t.Fatalf("put: %v", err)
	}
	payload[0] = 'X'

	got, err := store.Get(ctx, url)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if string(got) != "original" {
		t.Fatalf("stored payload mutated: %q", got)
	}
	got[0] = 'Y'
	again, err := store.Get(ctx, url)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if string(again) != "original" {
		t.Fatalf("returned payload aliased storage: %q", again)
	}
}

func TestMemoryStore_Driver(t *testing.T) {
	if NewMemory().Driver() != DriverMemory {
		t.Fatal("unexpected driver")
	}
}

func TestMemoryStore_Len(t *testing.T) {
	store := NewMemory()
	ctx := context.Background()
	if store.Len() != 0 {
		t.Fatalf("expected empty store, got %d", store.Len())
	}
	if _, err := store.Put(ctx, "a", []byte("1"), ""); err != nil {
		t.Fatalf("put: %v", err)
	}
	if _, err := store.Put(ctx, "b", []byte("2"), ""); err != nil {
		t.Fatalf("put: %v", err)
	}
	if store.Len() != 2 {
		t.Fatalf("expected 2 objects, got %d", store.Len())
	}
}
