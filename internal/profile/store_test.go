package profile

import (
	"os"
	"path/filepath"
	"testing"
)

func TestStoreSaveAndLoad(t *testing.T) {
	store := NewStore(t.TempDir())

	id, err := store.Save(Examples()[0])
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if id != "alice_johnson" {
		t.Errorf("id = %q, want alice_johnson", id)
	}

	got, err := store.Load(id)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if got.Name != "Alice Johnson" || got.Age != 28 {
		t.Errorf("loaded %q age %d, want Alice Johnson age 28", got.Name, got.Age)
	}
	if len(got.Hobbies) != 3 {
		t.Errorf("hobbies = %v, want 3 entries", got.Hobbies)
	}
}

func TestStoreLoadMissing(t *testing.T) {
	store := NewStore(t.TempDir())
	if _, err := store.Load("nobody"); err == nil {
		t.Error("expected error for missing profile")
	}
}

func TestStoreNameFallsBackToID(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "mystery.json"), []byte(`{"age": 40}`), 0o644); err != nil {
		t.Fatal(err)
	}

	store := NewStore(dir)
	p, err := store.Load("mystery")
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if p.Name != "mystery" {
		t.Errorf("name = %q, want id fallback", p.Name)
	}
}

func TestStoreListSkipsCorruptFiles(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(dir)

	for _, p := range Examples() {
		if _, err := store.Save(p); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.WriteFile(filepath.Join(dir, "broken.json"), []byte("{nope"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignore me"), 0o644); err != nil {
		t.Fatal(err)
	}

	list, err := store.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 profiles, got %d", len(list))
	}
	// ReadDir sorts, so ids come back alphabetically.
	if list[0].Name != "Alice Johnson" || list[1].Name != "Bob Smith" {
		t.Errorf("unexpected order: %q, %q", list[0].Name, list[1].Name)
	}
}

func TestStoreListEmptyDir(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "does-not-exist"))
	list, err := store.List()
	if err != nil {
		t.Fatalf("missing dir should not error: %v", err)
	}
	if len(list) != 0 {
		t.Errorf("expected empty list, got %d", len(list))
	}
}

func TestStoreDelete(t *testing.T) {
	store := NewStore(t.TempDir())
	id, err := store.Save(Examples()[1])
	if err != nil {
		t.Fatal(err)
	}

	if err := store.Delete(id); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, err := store.Load(id); err == nil {
		t.Error("profile still loadable after delete")
	}
}

func TestStoreRejectsInvalidProfile(t *testing.T) {
	store := NewStore(t.TempDir())
	if _, err := store.Save(Profile{}); err == nil {
		t.Error("expected validation error for empty profile")
	}
}
