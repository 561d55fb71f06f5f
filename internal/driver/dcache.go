package driver

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"klarlint/internal/report"
	"klarlint/internal/rules"
)

// Bump when cachePayload changes shape.
const diskCacheSchemaVersion uint16 = 1

// Digest is a SHA-256 content hash.
type Digest = [sha256.Size]byte

// DiskCache stores per-file analysis results keyed by content hash and
// rule-set fingerprint. Thread-safe for concurrent access.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// cachePayload is the on-disk shape of one file result.
type cachePayload struct {
	Schema        uint16
	Path          string
	State         uint8
	ResyncLine    uint32
	Reason        string
	Findings      []report.Finding
	DocPublic     int
	DocDocumented int
}

// OpenDiskCache initializes a cache under XDG_CACHE_HOME (or ~/.cache).
func OpenDiskCache(app string) (*DiskCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	dir := filepath.Join(base, app)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

// ruleFingerprint hashes the sorted rule ids so a different rule
// selection never reuses another selection's results.
func ruleFingerprint(rs []rules.Rule) Digest {
	ids := make([]string, 0, len(rs))
	for _, r := range rs {
		ids = append(ids, r.ID())
	}
	sort.Strings(ids)
	return sha256.Sum256([]byte(strings.Join(ids, ",")))
}

func cacheKey(content, fingerprint Digest) Digest {
	buf := make([]byte, 0, 2*sha256.Size)
	buf = append(buf, content[:]...)
	buf = append(buf, fingerprint[:]...)
	return sha256.Sum256(buf)
}

func (c *DiskCache) pathFor(key Digest) string {
	return filepath.Join(c.dir, "files", hex.EncodeToString(key[:])+".mp")
}

// Lookup returns the cached result for one file, if present and
// schema-compatible.
func (c *DiskCache) Lookup(content, fingerprint Digest) (report.FileResult, bool) {
	if c == nil {
		return report.FileResult{}, false
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(cacheKey(content, fingerprint)))
	if err != nil {
		return report.FileResult{}, false
	}
	defer func() { _ = f.Close() }()

	var payload cachePayload
	if err := msgpack.NewDecoder(f).Decode(&payload); err != nil {
		return report.FileResult{}, false
	}
	if payload.Schema != diskCacheSchemaVersion {
		return report.FileResult{}, false
	}
	return report.FileResult{
		Path:          payload.Path,
		State:         report.FileState(payload.State),
		ResyncLine:    payload.ResyncLine,
		Reason:        payload.Reason,
		Findings:      payload.Findings,
		DocPublic:     payload.DocPublic,
		DocDocumented: payload.DocDocumented,
	}, true
}

// Store writes one file result, replacing atomically.
func (c *DiskCache) Store(content, fingerprint Digest, res report.FileResult) error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(cacheKey(content, fingerprint))
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	payload := cachePayload{
		Schema:        diskCacheSchemaVersion,
		Path:          res.Path,
		State:         uint8(res.State),
		ResyncLine:    res.ResyncLine,
		Reason:        res.Reason,
		Findings:      res.Findings,
		DocPublic:     res.DocPublic,
		DocDocumented: res.DocDocumented,
	}
	if err := msgpack.NewEncoder(f).Encode(&payload); err != nil {
		_ = f.Close()
		_ = os.Remove(f.Name())
		return err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(f.Name())
		return err
	}
	return os.Rename(f.Name(), p)
}

// DropAll invalidates the whole cache.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	old := c.dir + ".old-" + time.Now().Format("20060102150405")
	if err := os.Rename(c.dir, old); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	return os.RemoveAll(old)
}
