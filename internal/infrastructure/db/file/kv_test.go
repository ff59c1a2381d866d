package file

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/syncro4/taskboard/internal/core/ports"
)

func TestKVStore_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	kv, err := Open(filepath.Join(dir, "state"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	ctx := context.Background()

	if err := kv.Put(ctx, "s4_tasks", []byte(`[]`)); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := kv.Put(ctx, "s4_tasks", []byte(`[{"id":"t1"}]`)); err != nil {
		t.Fatalf("overwrite: %v", err)
	}

	got, err := kv.Get(ctx, "s4_tasks")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if string(got) != `[{"id":"t1"}]` {
		t.Errorf("unexpected value %q", got)
	}

	if _, err := os.Stat(filepath.Join(dir, "state", "s4_tasks.json")); err != nil {
		t.Errorf("expected s4_tasks.json on disk: %v", err)
	}
	entries, _ := os.ReadDir(filepath.Join(dir, "state"))
	if len(entries) != 1 {
		t.Errorf("temporary files left behind: %v", entries)
	}
}

func TestKVStore_MissingAndDelete(t *testing.T) {
	kv, err := Open(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()

	if _, err := kv.Get(ctx, "s4_current_user"); !errors.Is(err, ports.ErrKeyNotFound) {
		t.Fatalf("expected ErrKeyNotFound, got %v", err)
	}
	if err := kv.Delete(ctx, "s4_current_user"); err != nil {
		t.Errorf("deleting a missing key should succeed, got %v", err)
	}

	_ = kv.Put(ctx, "s4_current_user", []byte(`{"id":"1"}`))
	if err := kv.Delete(ctx, "s4_current_user"); err != nil {
		t.Fatal(err)
	}
	if _, err := kv.Get(ctx, "s4_current_user"); !errors.Is(err, ports.ErrKeyNotFound) {
		t.Errorf("expected key gone after delete, got %v", err)
	}
}

func TestKVStore_EscapesKeys(t *testing.T) {
	dir := t.TempDir()
	kv, _ := Open(dir)

	if err := kv.Put(context.Background(), "../escape", []byte("x")); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(filepath.Join(filepath.Dir(dir), "escape.json")); err == nil {
		t.Error("key escaped the store directory")
	}
}

func TestKVStore_Ping(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "gone")
	kv, err := Open(dir)
	if err != nil {
		t.Fatal(err)
	}
	if err := kv.Ping(context.Background()); err != nil {
		t.Fatalf("ping: %v", err)
	}
	_ = os.RemoveAll(dir)
	if err := kv.Ping(context.Background()); err == nil {
		t.Error("expected ping to fail for a removed directory")
	}
}
