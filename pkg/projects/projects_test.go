package projects

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tableflip.dev/devlog/pkg/ident"
	"tableflip.dev/devlog/pkg/panel"
	"tableflip.dev/devlog/pkg/store"
)

var fixedNow = time.Date(2024, time.May, 4, 16, 0, 0, 0, time.UTC)

func newTestStore(t *testing.T, slots store.Slots) *Store {
	t.Helper()
	s, err := Load(context.Background(), store.NewRepository[Project](slots, Slot))
	require.NoError(t, err)
	s.IDs = &ident.Sequence{Prefix: "p"}
	s.Now = func() time.Time { return fixedNow }
	return s
}

func TestAddScenario(t *testing.T) {
	s := newTestStore(t, store.NewMemory())

	p, ok, err := s.Add(context.Background(), "Chat App", "An AI chat app", []string{}, "", "")
	require.NoError(t, err)
	require.True(t, ok)

	list := s.List()
	require.Len(t, list, 1)
	assert.Equal(t, p, list[0])
	assert.Equal(t, "Chat App", list[0].Title)
	assert.Equal(t, []string{}, list[0].Technologies)
	assert.Empty(t, list[0].LiveURL)
	assert.Empty(t, list[0].GitHubURL)
	assert.NotEmpty(t, list[0].ID)
	assert.False(t, list[0].DateAdded.IsZero())
}

func TestAddDefaultsNilTechnologies(t *testing.T) {
	s := newTestStore(t, store.NewMemory())

	p, ok, err := s.Add(context.Background(), "t", "d", nil, "", "")
	require.NoError(t, err)
	require.True(t, ok)
	assert.NotNil(t, p.Technologies)

	b, err := json.Marshal(p)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"technologies":[]`)
}

func TestAddRequiresTitleAndDescription(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, store.NewMemory())

	for _, tc := range []struct{ title, desc string }{
		{"", "desc"},
		{"title", ""},
		{"   ", "desc"},
		{"", ""},
	} {
		_, ok, err := s.Add(ctx, tc.title, tc.desc, []string{"Go"}, "", "")
		require.NoError(t, err)
		assert.False(t, ok, "title=%q desc=%q", tc.title, tc.desc)
	}
	assert.Empty(t, s.List())
}

func TestAddAppendsInInsertionOrder(t *testing.T) {
	ctx := context.Background()
	slots := store.NewMemory()
	s := newTestStore(t, slots)

	a, _, err := s.Add(ctx, "A", "first", nil, "https://a.example", "")
	require.NoError(t, err)
	b, _, err := s.Add(ctx, "B", "second", []string{"Go", "Go"}, "", "https://github.com/x/b")
	require.NoError(t, err)

	assert.Equal(t, []Project{a, b}, s.List())
	assert.Equal(t, []string{"Go", "Go"}, s.List()[1].Technologies)

	reloaded, err := store.Load[Project](ctx, slots, Slot)
	require.NoError(t, err)
	assert.Equal(t, s.List(), reloaded)
}

func TestAddCopiesTechnologies(t *testing.T) {
	s := newTestStore(t, store.NewMemory())
	tags := []string{"React", "Python"}

	_, _, err := s.Add(context.Background(), "t", "d", tags, "", "")
	require.NoError(t, err)
	tags[0] = "changed"

	assert.Equal(t, []string{"React", "Python"}, s.List()[0].Technologies)
}

func TestTechnologiesOnlyMatterBeforeSave(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, store.NewMemory())

	s.Open()
	d := s.Draft()
	d.Title = "Chat App"
	d.Description = "An AI chat app"
	s.AddTechnology("React")

	p, ok, err := s.Save(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []string{"React"}, p.Technologies)

	s.AddTechnology("Python")
	assert.Equal(t, []string{"React"}, s.List()[0].Technologies)
	assert.Equal(t, []string{"Python"}, s.Draft().Technologies)
}

func TestDraftAddTechnology(t *testing.T) {
	var d Draft
	assert.True(t, d.AddTechnology("  React "))
	assert.False(t, d.AddTechnology("   "))
	assert.False(t, d.AddTechnology(""))
	assert.True(t, d.AddTechnology("React"))
	assert.Equal(t, []string{"React", "React"}, d.Technologies)
}

func TestDraftRemoveTechnology(t *testing.T) {
	d := Draft{Technologies: []string{"React", "Python"}}
	d.RemoveTechnology("React")
	assert.Equal(t, []string{"Python"}, d.Technologies)

	d.RemoveTechnology("Rust")
	assert.Equal(t, []string{"Python"}, d.Technologies)
}

func TestDraftRemoveTechnologyDropsDuplicates(t *testing.T) {
	d := Draft{Technologies: []string{"Go", "SQL", "Go"}}
	d.RemoveTechnology("Go")
	assert.Equal(t, []string{"SQL"}, d.Technologies)
}

func TestDeleteIsIdempotent(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, store.NewMemory())
	a, _, err := s.Add(ctx, "A", "a", nil, "", "")
	require.NoError(t, err)
	b, _, err := s.Add(ctx, "B", "b", nil, "", "")
	require.NoError(t, err)

	removed, err := s.Delete(ctx, a.ID)
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = s.Delete(ctx, a.ID)
	require.NoError(t, err)
	assert.False(t, removed)
	assert.Equal(t, []Project{b}, s.List())
}

func TestStateMachine(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, store.NewMemory())

	s.Toggle()
	assert.Equal(t, panel.Drafting, s.State())
	s.Draft().Title = "half done"
	_, ok, err := s.Save(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, panel.Drafting, s.State())

	s.Cancel()
	assert.Equal(t, panel.Idle, s.State())
	assert.Equal(t, "half done", s.Draft().Title)

	s.Open()
	s.Draft().Description = "finished"
	_, ok, err = s.Save(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, panel.Idle, s.State())
	assert.Equal(t, Draft{}, *s.Draft())

	_, err = s.Delete(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, panel.Idle, s.State(), "delete does not open the form")
}

func TestLoadOriginalFormat(t *testing.T) {
	ctx := context.Background()
	slots := store.NewMemory()
	raw := `[{"id":"1714838400000","title":"Chat App","description":"An AI chat app","technologies":["React","FastAPI"],"liveUrl":"https://chat.example","githubUrl":"","dateAdded":"2024-05-04T16:00:00.000Z"}]`
	require.NoError(t, slots.Set(ctx, Slot, raw))

	s, err := Load(ctx, store.NewRepository[Project](slots, Slot))
	require.NoError(t, err)
	p, ok := s.Get("1714838400000")
	require.True(t, ok)
	assert.Equal(t, []string{"React", "FastAPI"}, p.Technologies)
	assert.Equal(t, "https://chat.example", p.LiveURL)
	assert.True(t, fixedNow.Equal(p.DateAdded.Time))

	b, err := json.Marshal(s.List())
	require.NoError(t, err)
	assert.JSONEq(t, raw, string(b))
}

func TestLoadWithoutTechnologiesSavesArray(t *testing.T) {
	ctx := context.Background()
	slots := store.NewMemory()
	require.NoError(t, slots.Set(ctx, Slot, `[{"id":"1","title":"a","description":"b"},{"id":"2","title":"c","description":"d","technologies":null}]`))

	s := newTestStore(t, slots)
	_, ok, err := s.Add(ctx, "new", "project", nil, "", "")
	require.NoError(t, err)
	require.True(t, ok)

	raw, _, err := slots.Get(ctx, Slot)
	require.NoError(t, err)
	assert.NotContains(t, raw, "null")

	var got []map[string]any
	require.NoError(t, json.Unmarshal([]byte(raw), &got))
	require.Len(t, got, 3)
	for _, p := range got {
		assert.Equal(t, []any{}, p["technologies"], p["id"])
	}
}

func TestLoadMalformedSlot(t *testing.T) {
	ctx := context.Background()
	slots := store.NewMemory()
	require.NoError(t, slots.Set(ctx, Slot, `[{"technologies":"React"}]`))

	_, err := Load(ctx, store.NewRepository[Project](slots, Slot))
	assert.Error(t, err)
}

func TestDraftBuild(t *testing.T) {
	d := &Draft{Title: "t"}
	_, err := d.Build("x", fixedNow)
	assert.ErrorIs(t, err, ErrIncompleteDraft)
}
