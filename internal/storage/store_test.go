package storage

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/pixil98/go-testutil"
)

// mockStoreSpec implements ValidatingSpec for testing FileStore
type mockStoreSpec struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

func (s *mockStoreSpec) Validate() error {
	return nil
}

func writeAsset(t *testing.T, dir, id string, spec *mockStoreSpec) {
	t.Helper()

	data, err := json.Marshal(Asset[*mockStoreSpec]{
		Version: 1,
		Id:      id,
		Spec:    spec,
	})
	if err != nil {
		t.Fatalf("failed to marshal test asset: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, id+".json"), data, 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}
}

func TestNewFileStore(t *testing.T) {
	tmpDir := t.TempDir()

	store, err := NewFileStore[*mockStoreSpec](tmpDir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	testutil.AssertEqual(t, "path", store.path, tmpDir)
	testutil.AssertEqual(t, "records length", len(store.records), 0)
}

func TestNewFileStore_NonExistentDirectory(t *testing.T) {
	_, err := NewFileStore[*mockStoreSpec]("/nonexistent/path/that/does/not/exist")
	if err == nil {
		t.Error("expected error for non-existent directory")
	}
}

func TestNewFileStore_WithExistingAssets(t *testing.T) {
	tmpDir := t.TempDir()

	writeAsset(t, tmpDir, "item-1", &mockStoreSpec{Name: "First", Value: 1})
	writeAsset(t, tmpDir, "item-2", &mockStoreSpec{Name: "Second", Value: 2})

	store, err := NewFileStore[*mockStoreSpec](tmpDir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	testutil.AssertEqual(t, "record count", len(store.records), 2)

	item1 := store.Get("item-1")
	if item1 == nil {
		t.Fatal("expected item-1 to be loaded")
	}
	testutil.AssertEqual(t, "item-1 name", item1.Name, "First")
	testutil.AssertEqual(t, "item-1 value", item1.Value, 1)
}

func TestNewFileStore_InvalidJSON(t *testing.T) {
	tmpDir := t.TempDir()

	err := os.WriteFile(filepath.Join(tmpDir, "bad.json"), []byte(`{invalid json`), 0644)
	if err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	_, err = NewFileStore[*mockStoreSpec](tmpDir)
	if err == nil {
		t.Error("expected error for invalid json")
	}
}

func TestNewFileStore_InvalidAsset(t *testing.T) {
	tmpDir := t.TempDir()

	// Version 0 fails envelope validation.
	data, err := json.Marshal(Asset[*mockStoreSpec]{
		Id:   "item-1",
		Spec: &mockStoreSpec{Name: "First"},
	})
	if err != nil {
		t.Fatalf("failed to marshal test asset: %v", err)
	}
	if err := os.WriteFile(filepath.Join(tmpDir, "item-1.json"), data, 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	_, err = NewFileStore[*mockStoreSpec](tmpDir)
	if err == nil {
		t.Error("expected error for invalid asset")
	}
}

func TestNewFileStore_DuplicateIds(t *testing.T) {
	tmpDir := t.TempDir()

	// Two files carrying the same asset id.
	data, err := json.Marshal(Asset[*mockStoreSpec]{
		Version: 1,
		Id:      "item-1",
		Spec:    &mockStoreSpec{Name: "First"},
	})
	if err != nil {
		t.Fatalf("failed to marshal test asset: %v", err)
	}
	for _, f := range []string{"a.json", "b.json"} {
		if err := os.WriteFile(filepath.Join(tmpDir, f), data, 0644); err != nil {
			t.Fatalf("failed to write test file: %v", err)
		}
	}

	_, err = NewFileStore[*mockStoreSpec](tmpDir)
	if err == nil {
		t.Error("expected error for duplicate ids")
	}
}

func TestNewFileStore_IgnoresNonJSON(t *testing.T) {
	tmpDir := t.TempDir()

	writeAsset(t, tmpDir, "item-1", &mockStoreSpec{Name: "First", Value: 1})
	err := os.WriteFile(filepath.Join(tmpDir, "notes.txt"), []byte("not an asset"), 0644)
	if err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	store, err := NewFileStore[*mockStoreSpec](tmpDir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "record count", len(store.records), 1)
}

func TestNewFileStore_WalksSubdirectories(t *testing.T) {
	tmpDir := t.TempDir()

	sub := filepath.Join(tmpDir, "nested")
	if err := os.Mkdir(sub, 0755); err != nil {
		t.Fatalf("failed to create subdirectory: %v", err)
	}
	writeAsset(t, tmpDir, "item-1", &mockStoreSpec{Name: "First", Value: 1})
	writeAsset(t, sub, "item-2", &mockStoreSpec{Name: "Second", Value: 2})

	store, err := NewFileStore[*mockStoreSpec](tmpDir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "record count", len(store.records), 2)
}

func TestFileStore_SaveGet(t *testing.T) {
	tmpDir := t.TempDir()

	store, err := NewFileStore[*mockStoreSpec](tmpDir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	spec := &mockStoreSpec{Name: "Saved", Value: 42}
	if err := store.Save("item-1", spec); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := store.Get("item-1")
	if got == nil {
		t.Fatal("expected saved item")
	}
	testutil.AssertEqual(t, "name", got.Name, "Saved")
	testutil.AssertEqual(t, "value", got.Value, 42)

	// The save must be durable: a fresh store sees it.
	reloaded, err := NewFileStore[*mockStoreSpec](tmpDir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got = reloaded.Get("item-1")
	if got == nil {
		t.Fatal("expected reloaded item")
	}
	testutil.AssertEqual(t, "reloaded name", got.Name, "Saved")
}

func TestFileStore_GetMissing(t *testing.T) {
	store, err := NewFileStore[*mockStoreSpec](t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := store.Get("nope"); got != nil {
		t.Fatalf("expected nil for missing id, got %v", got)
	}
}

func TestFileStore_GetAll(t *testing.T) {
	tmpDir := t.TempDir()

	writeAsset(t, tmpDir, "item-1", &mockStoreSpec{Name: "First", Value: 1})
	writeAsset(t, tmpDir, "item-2", &mockStoreSpec{Name: "Second", Value: 2})

	store, err := NewFileStore[*mockStoreSpec](tmpDir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	all := store.GetAll()
	testutil.AssertEqual(t, "count", len(all), 2)
	testutil.AssertEqual(t, "item-1", all["item-1"].Name, "First")
	testutil.AssertEqual(t, "item-2", all["item-2"].Name, "Second")

	// Mutating the returned map must not affect the store.
	delete(all, "item-1")
	if got := store.Get("item-1"); got == nil {
		t.Fatal("expected store to be unaffected by caller mutation")
	}
}
