package blob

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestFileStore_PutGetDelete(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	ctx := context.Background()

	url, err := store.Put(ctx, "orders/O1/invoice/1.pdf", []byte("payload"), "application/pdf")
	if err != nil {
		t.Fatalf("put: %v", err)
	}
	if !strings.HasPrefix(url, "file://") {
		t.Fatalf("unexpected url: %s", url)
	}

	data, err := store.Get(ctx, url)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if string(data) != "payload" {
		t.Fatalf("unexpected payload: %q", data)
	}

	if err := store.Delete(ctx, url); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := store.Get(ctx, url); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestFileStore_OverwriteSameKey(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	ctx := context.Background()

	if _, err := store.Put(ctx, "k.pdf", []byte("one"), ""); err != nil {
		t.Fatalf("first put: %v", err)
	}
	url, err := store.Put(ctx, "k.pdf", []byte("two"), "")
	if err != nil {
		t.Fatalf("second put: %v", err)
	}
	data, err := store.Get(ctx, url)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if string(data) != "two" {
		t.Fatalf("expected overwrite, got %q", data)
	}
}

func TestFileStore_RejectsEscapingKeys(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	ctx := context.Background()

	cases := []string{"", "  ", "/etc/passwd", "../outside", "a/../../outside"}
	for _, key := range cases {
		if _, err := store.Put(ctx, key, []byte("x"), ""); err == nil {
			t.Fatalf("expected error for key %q", key)
		}
	}
}

func TestFileStore_RejectsURLOutsideRoot(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	if _, err := store.Get(context.Background(), "file:///etc/passwd"); err == nil {
		t.Fatal("expected error for url outside root")
	}
}

func TestFileStore_Driver(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	if store.Driver() != DriverFilesystem {
		t.Fatal("unexpected driver")
	}
}
