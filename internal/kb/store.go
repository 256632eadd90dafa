// Package kb is the learning store: confidently decided claims are
// remembered so repeat queries answer instantly without a new fan-out.
package kb

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	fuzzy "github.com/paul-mannino/go-fuzzywuzzy"

	"github.com/trustify-ai/trustify/internal/model"
)

// Entry is one remembered verdict.
type Entry struct {
	Score       float64           `json:"score"`
	Explanation string            `json:"explanation"`
	Summary     string            `json:"summary,omitempty"`
	Sources     []model.SourceRef `json:"sources,omitempty"`
	LearnedAt   time.Time         `json:"learned_at"`
}

// Hit is a successful lookup: the stored entry plus which bucket it
// came from.
type Hit struct {
	Claim    string
	Entry    Entry
	Verified bool // true = verified bucket, false = known-fake bucket
}

// Store is the knowledge-base contract. Implementations must be safe
// for concurrent use.
type Store interface {
	// Lookup finds a stored verdict for a claim, matching fuzzily so
	// small rewordings still hit.
	Lookup(claim string) (*Hit, bool)

	// Remember stores a confidently decided claim. verified selects
	// the bucket; repeated claims overwrite, last write wins.
	Remember(claim string, verified bool, entry Entry) error

	// Snapshot returns counts per bucket for status reporting.
	Snapshot() (verified, fake int)
}

// LearningRecord is one line of the append-only learning history.
type LearningRecord struct {
	Claim     string    `json:"claim"`
	Verified  bool      `json:"verified"`
	Score     float64   `json:"score"`
	LearnedAt time.Time `json:"learned_at"`
}

// fileData is the on-disk shape: two flat claim-keyed maps plus the
// learning history.
type fileData struct {
	VerifiedTopics map[string]Entry `json:"verified_topics"`
	FakeTopics     map[string]Entry `json:"fake_topics"`
	LearningData   []LearningRecord `json:"learning_data"`
}

// FileStore keeps the knowledge base in one flat JSON file. A single
// mutex serializes every write; the whole file is rewritten on each
// Remember, which is fine at knowledge-base scale.
type FileStore struct {
	path        string
	matchCutoff int

	mu   sync.Mutex
	data fileData
}

// NewFileStore opens (or initializes) the knowledge base at path.
// A missing file is an empty store; a corrupt one is reset rather than
// failing every verification that follows.
func NewFileStore(path string, matchCutoff int) (*FileStore, error) {
	s := &FileStore{
		path:        path,
		matchCutoff: matchCutoff,
		data: fileData{
			VerifiedTopics: make(map[string]Entry),
			FakeTopics:     make(map[string]Entry),
		},
	}

	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read knowledge base: %w", err)
	}

	var data fileData
	if err := json.Unmarshal(raw, &data); err != nil {
		return s, nil
	}
	if data.VerifiedTopics != nil {
		s.data.VerifiedTopics = data.VerifiedTopics
	}
	if data.FakeTopics != nil {
		s.data.FakeTopics = data.FakeTopics
	}
	s.data.LearningData = data.LearningData

	return s, nil
}

// Lookup checks the verified bucket first, then the known-fake bucket.
func (s *FileStore) Lookup(claim string) (*Hit, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	normalized := normalize(claim)

	if key, entry, ok := s.bestMatch(normalized, s.data.VerifiedTopics); ok {
		return &Hit{Claim: key, Entry: entry, Verified: true}, true
	}
	if key, entry, ok := s.bestMatch(normalized, s.data.FakeTopics); ok {
		return &Hit{Claim: key, Entry: entry, Verified: false}, true
	}

	return nil, false
}

func (s *FileStore) bestMatch(normalized string, bucket map[string]Entry) (string, Entry, bool) {
	bestScore := 0
	var bestKey string

	for key := range bucket {
		score := fuzzy.Ratio(normalized, normalize(key))
		if score > bestScore {
			bestScore = score
			bestKey = key
		}
	}

	if bestScore > s.matchCutoff {
		return bestKey, bucket[bestKey], true
	}
	return "", Entry{}, false
}

// Remember stores the claim and rewrites the file.
func (s *FileStore) Remember(claim string, verified bool, entry Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if entry.LearnedAt.IsZero() {
		entry.LearnedAt = time.Now().UTC()
	}

	key := normalize(claim)
	if verified {
		s.data.VerifiedTopics[key] = entry
	} else {
		s.data.FakeTopics[key] = entry
	}
	s.data.LearningData = append(s.data.LearningData, LearningRecord{
		Claim:     key,
		Verified:  verified,
		Score:     entry.Score,
		LearnedAt: entry.LearnedAt,
	})

	return s.flush()
}

// Snapshot returns the current bucket sizes.
func (s *FileStore) Snapshot() (verified, fake int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.data.VerifiedTopics), len(s.data.FakeTopics)
}

func (s *FileStore) flush() error {
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create knowledge base dir: %w", err)
		}
	}

	raw, err := json.MarshalIndent(s.data, "", "  ")
	if err != nil {
		return fmt.Errorf("encode knowledge base: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return fmt.Errorf("write knowledge base: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace knowledge base: %w", err)
	}

	return nil
}

func normalize(claim string) string {
	return strings.ToLower(strings.TrimSpace(claim))
}

// Noop is the disabled knowledge base: lookups miss, writes vanish.
type Noop struct{}

func (Noop) Lookup(string) (*Hit, bool)         { return nil, false }
func (Noop) Remember(string, bool, Entry) error { return nil }
func (Noop) Snapshot() (verified, fake int)     { return 0, 0 }
