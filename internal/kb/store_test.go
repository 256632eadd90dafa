package kb

import (
	"os"
	"path/filepath"
	"testing"
)

func newTestStore(t *testing.T) (*FileStore, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "knowledge_base.json")
	store, err := NewFileStore(path, 80)
	if err != nil {
		t.Fatalf("create store: %v", err)
	}
	return store, path
}

func TestFileStore_RememberAndLookup(t *testing.T) {
	store, _ := newTestStore(t)

	err := store.Remember("NASA confirmed water on the moon", true, Entry{
		Score:       8.5,
		Explanation: "Multiple credible outlets covered the announcement",
	})
	if err != nil {
		t.Fatalf("remember: %v", err)
	}

	hit, ok := store.Lookup("NASA confirmed water on the moon")
	if !ok {
		t.Fatal("expected exact lookup to hit")
	}
	if !hit.Verified {
		t.Error("expected a verified-bucket hit")
	}
	if hit.Entry.Score != 8.5 {
		t.Errorf("expected score 8.5, got %.1f", hit.Entry.Score)
	}
}

func TestFileStore_FuzzyLookup(t *testing.T) {
	store, _ := newTestStore(t)

	if err := store.Remember("massive earthquake hit tokyo yesterday", false, Entry{Score: 1.5}); err != nil {
		t.Fatalf("remember: %v", err)
	}

	// Small rewording should still match
	hit, ok := store.Lookup("massive earthquake hit tokio yesterday")
	if !ok {
		t.Fatal("expected fuzzy lookup to hit")
	}
	if hit.Verified {
		t.Error("expected a fake-bucket hit")
	}

	// A different claim must miss
	if _, ok := store.Lookup("stock markets rallied this morning"); ok {
		t.Error("unrelated claim should not match")
	}

	// Sharing a few words is not enough to clear the cutoff
	if _, ok := store.Lookup("earthquake in tokyo"); ok {
		t.Error("loosely related claim should stay below the match cutoff")
	}
}

func TestFileStore_LastWriteWins(t *testing.T) {
	store, _ := newTestStore(t)

	if err := store.Remember("ceasefire announced in the region", true, Entry{Score: 7.2}); err != nil {
		t.Fatalf("first remember: %v", err)
	}
	if err := store.Remember("ceasefire announced in the region", true, Entry{Score: 8.9}); err != nil {
		t.Fatalf("second remember: %v", err)
	}

	hit, ok := store.Lookup("ceasefire announced in the region")
	if !ok {
		t.Fatal("expected lookup to hit")
	}
	if hit.Entry.Score != 8.9 {
		t.Errorf("expected the later score 8.9, got %.1f", hit.Entry.Score)
	}

	verified, fake := store.Snapshot()
	if verified != 1 || fake != 0 {
		t.Errorf("expected one verified entry, got verified=%d fake=%d", verified, fake)
	}
}

func TestFileStore_PersistsAcrossReopen(t *testing.T) {
	store, path := newTestStore(t)

	if err := store.Remember("vaccines cause autism", false, Entry{Score: 1.0}); err != nil {
		t.Fatalf("remember: %v", err)
	}

	reopened, err := NewFileStore(path, 80)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}

	hit, ok := reopened.Lookup("vaccines cause autism")
	if !ok {
		t.Fatal("expected persisted entry after reopen")
	}
	if hit.Verified {
		t.Error("expected a fake-bucket hit")
	}
}

func TestFileStore_CorruptFileResets(t *testing.T) {
	path := filepath.Join(t.TempDir(), "knowledge_base.json")
	if err := os.WriteFile(path, []byte("not json at all"), 0o644); err != nil {
		t.Fatalf("seed corrupt file: %v", err)
	}

	store, err := NewFileStore(path, 80)
	if err != nil {
		t.Fatalf("corrupt file should reset, not fail: %v", err)
	}

	verified, fake := store.Snapshot()
	if verified != 0 || fake != 0 {
		t.Errorf("expected empty store, got verified=%d fake=%d", verified, fake)
	}
}
