package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testConfig struct {
	path     string
	backend  Backend
	redisURL string
}

func (t testConfig) BasePath() string    { return t.path }
func (t testConfig) Backend() Backend    { return t.backend }
func (t testConfig) RedisURL() string    { return t.redisURL }
func (t testConfig) RedisPrefix() string { return DefaultRedisPrefix }

func openAll(t *testing.T) map[Backend]Slots {
	t.Helper()
	ctx := context.Background()
	mr := miniredis.RunT(t)

	out := make(map[Backend]Slots)
	for _, b := range Backends() {
		cfg := testConfig{
			path:     t.TempDir(),
			backend:  b,
			redisURL: "redis://" + mr.Addr() + "/0",
		}
		s, err := Open(ctx, cfg)
		require.NoError(t, err, "open %s", b)
		t.Cleanup(func() { _ = s.Close() })
		out[b] = s
	}
	return out
}

func TestBackendsGetSet(t *testing.T) {
	ctx := context.Background()
	for backend, s := range openAll(t) {
		t.Run(string(backend), func(t *testing.T) {
			_, ok, err := s.Get(ctx, "journalEntries")
			require.NoError(t, err)
			assert.False(t, ok, "fresh slot should be absent")

			require.NoError(t, s.Set(ctx, "journalEntries", `[{"id":"1"}]`))
			v, ok, err := s.Get(ctx, "journalEntries")
			require.NoError(t, err)
			assert.True(t, ok)
			assert.Equal(t, `[{"id":"1"}]`, v)

			require.NoError(t, s.Set(ctx, "journalEntries", `[]`))
			v, _, err = s.Get(ctx, "journalEntries")
			require.NoError(t, err)
			assert.Equal(t, `[]`, v)

			_, ok, err = s.Get(ctx, "projects")
			require.NoError(t, err)
			assert.False(t, ok, "slots are independent")
		})
	}
}

func TestBackendsRoundTripRecords(t *testing.T) {
	ctx := context.Background()
	want := []record{{ID: "1", Name: "one", Tags: []string{"go", "go"}}, {ID: "2", Tags: []string{}}}
	for backend, s := range openAll(t) {
		t.Run(string(backend), func(t *testing.T) {
			require.NoError(t, Save(ctx, s, "projects", want))
			got, err := Load[record](ctx, s, "projects")
			require.NoError(t, err)
			assert.Equal(t, want, got)
		})
	}
}

func TestBackendsRejectBadKeys(t *testing.T) {
	ctx := context.Background()
	for backend, s := range openAll(t) {
		t.Run(string(backend), func(t *testing.T) {
			for _, key := range []string{"", "  ", "../escape", `a\b`, ".hidden"} {
				assert.Error(t, s.Set(ctx, key, "[]"), "key %q", key)
				_, _, err := s.Get(ctx, key)
				assert.Error(t, err, "key %q", key)
			}
		})
	}
}

func TestOpenUnknownBackend(t *testing.T) {
	_, err := Open(context.Background(), testConfig{path: t.TempDir(), backend: "tape"})
	assert.Error(t, err)
}

func TestOpenNilConfig(t *testing.T) {
	_, err := Open(context.Background(), nil)
	assert.Error(t, err)
}

func TestDiskvWritesJSONFile(t *testing.T) {
	ctx := context.Background()
	base := t.TempDir()
	s, err := NewDiskv(base)
	require.NoError(t, err)

	require.NoError(t, s.Set(ctx, "projects", `[]`))

	data, err := os.ReadFile(filepath.Join(base, "projects.json"))
	require.NoError(t, err)
	assert.Equal(t, `[]`, string(data))
	assert.Equal(t, filepath.Join(base, "projects.json"), s.Path("projects"))
}

func TestDiskvSeesExternalEdits(t *testing.T) {
	ctx := context.Background()
	base := t.TempDir()
	s, err := NewDiskv(base)
	require.NoError(t, err)

	require.NoError(t, s.Set(ctx, "projects", `[{"id":"1"}]`))
	_, _, err = s.Get(ctx, "projects")
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(s.Path("projects"), []byte(`[{"id":"2"}]`), 0o644))
	v, ok, err := s.Get(ctx, "projects")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `[{"id":"2"}]`, v)

	require.NoError(t, os.Remove(s.Path("projects")))
	_, ok, err = s.Get(ctx, "projects")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestNewDiskvRequiresPath(t *testing.T) {
	_, err := NewDiskv("")
	assert.Error(t, err)
}

func TestSQLiteSurvivesReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "devlog.db")

	s, err := OpenSQLite(path)
	require.NoError(t, err)
	require.NoError(t, s.Set(ctx, "journalEntries", `[{"id":"x"}]`))
	require.NoError(t, s.Close())

	s, err = OpenSQLite(path)
	require.NoError(t, err)
	defer s.Close()
	v, ok, err := s.Get(ctx, "journalEntries")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `[{"id":"x"}]`, v)
}

func TestRedisUsesPrefix(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)

	s, err := DialRedis(ctx, "redis://"+mr.Addr()+"/0", "test:")
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.Set(ctx, "projects", `[]`))
	got, err := mr.Get("test:projects")
	require.NoError(t, err)
	assert.Equal(t, `[]`, got)
}

func TestDialRedisUnreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	_, err := DialRedis(context.Background(), "redis://"+addr+"/0", DefaultRedisPrefix)
	assert.Error(t, err)
}

func TestDialRedisBadURL(t *testing.T) {
	_, err := DialRedis(context.Background(), "http://nope", DefaultRedisPrefix)
	assert.Error(t, err)
}
