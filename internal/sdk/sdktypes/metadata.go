package sdktypes

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/afero"

	"github.com/zjrosen/sdktable/internal/cachemanager"
	"github.com/zjrosen/sdktable/internal/log"
)

// DefaultMetadataTTL is how long parsed release/VERSION files stay cached.
const DefaultMetadataTTL = 10 * time.Minute

// MetadataReader parses the small descriptor files found in SDK homes and
// memoises the result per file path, so validators and repeated CreateSdk
// calls for the same home read each file once.
type MetadataReader struct {
	fs       afero.Fs
	releases *cachemanager.InMemoryCacheManager[string, map[string]string]
	versions *cachemanager.InMemoryCacheManager[string, map[string]string]
	props    *cachemanager.ReadThroughCache[string, map[string]string]
	lines    *cachemanager.ReadThroughCache[string, map[string]string]
}

// NewMetadataReader creates a reader over fsys. ttl <= 0 uses DefaultMetadataTTL.
func NewMetadataReader(fsys afero.Fs, ttl time.Duration) *MetadataReader {
	if ttl <= 0 {
		ttl = DefaultMetadataTTL
	}
	r := &MetadataReader{
		fs:       fsys,
		releases: cachemanager.NewInMemoryCacheManager[string, map[string]string]("sdk-release", ttl, cachemanager.DefaultCleanupInterval),
		versions: cachemanager.NewInMemoryCacheManager[string, map[string]string]("sdk-version", ttl, cachemanager.DefaultCleanupInterval),
	}
	r.props = cachemanager.NewReadThroughCache[string, map[string]string](r.releases, r.readProperties, ttl)
	r.lines = cachemanager.NewReadThroughCache[string, map[string]string](r.versions, r.readVersionFile, ttl)
	return r
}

// Release returns the KEY=value pairs of home/release. A missing file yields
// an empty map.
func (r *MetadataReader) Release(home string) (map[string]string, error) {
	return r.props.Get(context.Background(), filepath.Join(home, "release"))
}

// GoVersion returns the contents of home/VERSION. The first line is stored
// under "version"; later "key value" lines keep their key.
func (r *MetadataReader) GoVersion(home string) (map[string]string, error) {
	return r.lines.Get(context.Background(), filepath.Join(home, "VERSION"))
}

// Forget drops any cached metadata for home.
func (r *MetadataReader) Forget(home string) {
	ctx := context.Background()
	_ = r.props.Invalidate(ctx, filepath.Join(home, "release"))
	_ = r.lines.Invalidate(ctx, filepath.Join(home, "VERSION"))
}

// Flush drops all cached metadata.
func (r *MetadataReader) Flush() {
	ctx := context.Background()
	_ = r.props.Flush(ctx)
	_ = r.lines.Flush(ctx)
}

// Cached returns the number of cached metadata files.
func (r *MetadataReader) Cached() int {
	return r.releases.Count() + r.versions.Count()
}

func (r *MetadataReader) readProperties(_ context.Context, path string) (map[string]string, error) {
	f, err := r.fs.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		log.Debug(log.CatResolve, "no release file", "path", path)
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	props := make(map[string]string)
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		props[strings.TrimSpace(key)] = strings.Trim(strings.TrimSpace(value), `"'`)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return props, nil
}

func (r *MetadataReader) readVersionFile(_ context.Context, path string) (map[string]string, error) {
	data, err := afero.ReadFile(r.fs, path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	out := make(map[string]string)
	for i, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if i == 0 {
			out["version"] = line
			continue
		}
		if key, value, ok := strings.Cut(line, " "); ok {
			out[key] = strings.TrimSpace(value)
		}
	}
	return out, nil
}
