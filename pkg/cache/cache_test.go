package cache

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/vmihailenco/msgpack/v5"

	ferrors "github.com/matzehuels/mermaid-filter/pkg/errors"
)

func TestHash(t *testing.T) {
	// Test determinism
	h1 := Hash([]byte("hello"))
	h2 := Hash([]byte("hello"))
	if h1 != h2 {
		t.Error("Hash should be deterministic")
	}

	// Test different inputs produce different hashes
	h3 := Hash([]byte("world"))
	if h1 == h3 {
		t.Error("Different inputs should produce different hashes")
	}

	// Test hash length (SHA-256 produces 64 hex chars)
	if len(h1) != 64 {
		t.Errorf("Hash length should be 64, got %d", len(h1))
	}
}

func TestDigest(t *testing.T) {
	d1 := Digest("graph TD; A-->B", "default", 800, 600)
	d2 := Digest("graph TD; A-->B", "default", 800, 600)
	if d1 != d2 {
		t.Error("Digest should be deterministic")
	}

	// Boundaries between parts are part of the digest
	if Digest("ab", "c") == Digest("a", "bc") {
		t.Error("Digest should not collapse part boundaries")
	}

	if Digest("x", "default", 800, 600) == Digest("x", "dark", 800, 600) {
		t.Error("Different themes should produce different digests")
	}
	if Digest("x", "default", 800, 600) == Digest("x", "default", 600, 800) {
		t.Error("Swapped dimensions should produce different digests")
	}
}

func TestEntryKey(t *testing.T) {
	if got := EntryKey("mermaid", "abc", "png"); got != "mermaid_abc.png" {
		t.Errorf("EntryKey() = %q, want %q", got, "mermaid_abc.png")
	}
}

func TestFileStore(t *testing.T) {
	ctx := context.Background()
	dir := filepath.Join(t.TempDir(), "generated_diagrams")
	s := NewFileStore(dir)
	defer s.Close()

	// Directory is created lazily
	if _, err := os.Stat(dir); !os.IsNotExist(err) {
		t.Fatalf("directory should not exist before first write: %v", err)
	}

	ok, err := s.Has(ctx, "mermaid_x.png")
	if err != nil {
		t.Fatalf("Has error: %v", err)
	}
	if ok {
		t.Error("Has should report miss on empty store")
	}

	if err := s.Set(ctx, "mermaid_x.png", []byte("png-bytes")); err != nil {
		t.Fatalf("Set error: %v", err)
	}

	if got := s.Path("mermaid_x.png"); got != filepath.Join(dir, "mermaid_x.png") {
		t.Errorf("Path() = %q", got)
	}

	data, hit, err := s.Get(ctx, "mermaid_x.png")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if !hit || string(data) != "png-bytes" {
		t.Errorf("Get = %q, %v; want png-bytes, true", data, hit)
	}

	// Entry is a plain file at Path
	onDisk, err := os.ReadFile(s.Path("mermaid_x.png"))
	if err != nil {
		t.Fatalf("ReadFile error: %v", err)
	}
	if string(onDisk) != "png-bytes" {
		t.Errorf("file content = %q", onDisk)
	}

	if err := s.Delete(ctx, "mermaid_x.png"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
	if err := s.Delete(ctx, "mermaid_x.png"); err != nil {
		t.Errorf("Delete of missing key should succeed: %v", err)
	}
	if _, hit, _ := s.Get(ctx, "mermaid_x.png"); hit {
		t.Error("Get should miss after Delete")
	}
}

func TestFileStoreDefaultDir(t *testing.T) {
	s := NewFileStore("")
	if s.Dir() != DefaultDir {
		t.Errorf("Dir() = %q, want %q", s.Dir(), DefaultDir)
	}
}

func TestFileStoreClear(t *testing.T) {
	ctx := context.Background()
	s := NewFileStore(t.TempDir())

	for _, key := range []string{"mermaid_a.png", "mermaid_b.svg", "graphviz_c.pdf"} {
		if err := s.Set(ctx, key, []byte(key)); err != nil {
			t.Fatalf("Set(%s) error: %v", key, err)
		}
	}
	if err := os.Mkdir(filepath.Join(s.Dir(), "nested"), 0755); err != nil {
		t.Fatal(err)
	}

	keys, err := s.Entries()
	if err != nil {
		t.Fatalf("Entries error: %v", err)
	}
	if len(keys) != 3 {
		t.Errorf("Entries() = %v, want 3 entries", keys)
	}

	n, err := s.Clear(ctx)
	if err != nil {
		t.Fatalf("Clear error: %v", err)
	}
	if n != 3 {
		t.Errorf("Clear() = %d, want 3", n)
	}

	keys, _ = s.Entries()
	if len(keys) != 0 {
		t.Errorf("Entries() after Clear = %v", keys)
	}
}

func TestFileStoreClearMissingDir(t *testing.T) {
	s := NewFileStore(filepath.Join(t.TempDir(), "absent"))
	n, err := s.Clear(context.Background())
	if err != nil || n != 0 {
		t.Errorf("Clear() on missing dir = %d, %v; want 0, nil", n, err)
	}
}

func TestFileStoreUnwritableDir(t *testing.T) {
	// A regular file where the directory should be makes MkdirAll fail.
	parent := t.TempDir()
	blocker := filepath.Join(parent, "blocker")
	if err := os.WriteFile(blocker, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	s := NewFileStore(filepath.Join(blocker, "diagrams"))
	err := s.Set(context.Background(), "mermaid_x.png", []byte("x"))
	if !ferrors.Is(err, ferrors.ErrCodeFilesystem) {
		t.Errorf("Set error = %v, want FILESYSTEM", err)
	}
}

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore("out")

	if err := s.Set(ctx, "k", []byte("v")); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	if ok, _ := s.Has(ctx, "k"); !ok {
		t.Error("Has should hit after Set")
	}
	data, hit, _ := s.Get(ctx, "k")
	if !hit || string(data) != "v" {
		t.Errorf("Get = %q, %v", data, hit)
	}

	// Returned bytes are a copy
	data[0] = 'x'
	again, _, _ := s.Get(ctx, "k")
	if string(again) != "v" {
		t.Error("MemoryStore should not expose internal buffers")
	}

	if s.Path("k") != filepath.Join("out", "k") {
		t.Errorf("Path() = %q", s.Path("k"))
	}
	if s.Len() != 1 {
		t.Errorf("Len() = %d, want 1", s.Len())
	}

	_ = s.Delete(ctx, "k")
	if s.Len() != 0 {
		t.Errorf("Len() after Delete = %d, want 0", s.Len())
	}
}

// fakeBlobs is an in-memory remote tier that can be made to fail.
type fakeBlobs struct {
	data map[string][]byte
	err  error
	gets int
	sets int
}

func newFakeBlobs() *fakeBlobs { return &fakeBlobs{data: map[string][]byte{}} }

func (f *fakeBlobs) Get(ctx context.Context, key string) ([]byte, bool, error) {
	f.gets++
	if f.err != nil {
		return nil, false, f.err
	}
	d, ok := f.data[key]
	return d, ok, nil
}

func (f *fakeBlobs) Set(ctx context.Context, key string, data []byte) error {
	f.sets++
	if f.err != nil {
		return f.err
	}
	f.data[key] = data
	return nil
}

func (f *fakeBlobs) Delete(ctx context.Context, key string) error {
	delete(f.data, key)
	return f.err
}

func (f *fakeBlobs) Close() error { return nil }

func TestTieredPullsRemoteHit(t *testing.T) {
	ctx := context.Background()
	local := NewMemoryStore("")
	remote := newFakeBlobs()
	remote.data["mermaid_a.svg"] = []byte("<svg/>")

	s := NewTiered(local, remote)

	ok, err := s.Has(ctx, "mermaid_a.svg")
	if err != nil || !ok {
		t.Fatalf("Has = %v, %v; want true, nil", ok, err)
	}
	if ok, _ := local.Has(ctx, "mermaid_a.svg"); !ok {
		t.Error("remote hit should be copied into the local store")
	}

	// Second lookup is served locally
	gets := remote.gets
	if ok, _ := s.Has(ctx, "mermaid_a.svg"); !ok {
		t.Error("Has should hit")
	}
	if remote.gets != gets {
		t.Error("local hit should not consult the remote tier")
	}
}

func TestTieredSetWritesBothTiers(t *testing.T) {
	ctx := context.Background()
	local := NewMemoryStore("")
	remote := newFakeBlobs()
	s := NewTiered(local, remote)

	if err := s.Set(ctx, "k", []byte("v")); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	if string(remote.data["k"]) != "v" {
		t.Error("Set should write the remote tier")
	}
	if _, hit, _ := local.Get(ctx, "k"); !hit {
		t.Error("Set should write the local tier")
	}
}

func TestTieredRemoteErrorsAreMisses(t *testing.T) {
	ctx := context.Background()
	remote := newFakeBlobs()
	remote.err = errors.New("connection refused")

	var reported []string
	s := NewTiered(NewMemoryStore(""), remote)
	s.OnRemoteError = func(op, key string, err error) {
		reported = append(reported, op)
	}

	ok, err := s.Has(ctx, "k")
	if err != nil || ok {
		t.Errorf("Has = %v, %v; want false, nil", ok, err)
	}
	if err := s.Set(ctx, "k", []byte("v")); err != nil {
		t.Errorf("Set should not fail on remote error: %v", err)
	}
	if len(reported) != 2 || reported[0] != "get" || reported[1] != "set" {
		t.Errorf("reported = %v, want [get set]", reported)
	}
}

func TestTieredWithoutRemote(t *testing.T) {
	ctx := context.Background()
	s := NewTiered(NewMemoryStore("d"), nil)

	if ok, _ := s.Has(ctx, "k"); ok {
		t.Error("Has should miss")
	}
	if err := s.Set(ctx, "k", []byte("v")); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	if s.Path("k") != filepath.Join("d", "k") {
		t.Errorf("Path() = %q", s.Path("k"))
	}
	if err := s.Close(); err != nil {
		t.Errorf("Close error: %v", err)
	}
}

func TestNewRedisBlobs(t *testing.T) {
	b, err := NewRedisBlobs("redis://localhost:6379/0", "")
	if err != nil {
		t.Fatalf("NewRedisBlobs error: %v", err)
	}
	defer b.Close()

	if got := b.Key("mermaid_a.png"); got != "mermaid-filter:mermaid_a.png" {
		t.Errorf("Key() = %q", got)
	}

	if _, err := NewRedisBlobs("not a url", ""); !ferrors.Is(err, ferrors.ErrCodeInvalidConfig) {
		t.Errorf("invalid url error = %v, want INVALID_CONFIG", err)
	}
}

func TestRecordRoundTrip(t *testing.T) {
	data := []byte("<svg/>")
	raw, err := encodeRecord("mermaid_a.svg", data)
	if err != nil {
		t.Fatalf("encodeRecord error: %v", err)
	}

	got, err := decodeRecord("mermaid_a.svg", raw)
	if err != nil {
		t.Fatalf("decodeRecord error: %v", err)
	}
	if string(got) != string(data) {
		t.Errorf("decodeRecord = %q, want %q", got, data)
	}
}

func TestRecordRejectsBadEntries(t *testing.T) {
	raw, err := encodeRecord("mermaid_a.svg", []byte("<svg/>"))
	if err != nil {
		t.Fatal(err)
	}

	tampered, err := msgpack.Marshal(&record{Key: "mermaid_a.svg", Hash: Hash([]byte("<svg/>")), Data: []byte("<svg")})
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		key  string
		raw  []byte
	}{
		{"wrong key", "mermaid_b.svg", raw},
		{"hash mismatch", "mermaid_a.svg", tampered},
		{"truncated", "mermaid_a.svg", raw[:len(raw)-2]},
		{"not a record", "mermaid_a.svg", []byte("plain bytes")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := decodeRecord(tt.key, tt.raw); !ferrors.Is(err, ferrors.ErrCodeCache) {
				t.Errorf("decodeRecord error = %v, want CACHE", err)
			}
		})
	}
}
