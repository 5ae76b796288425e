package printers

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tableflip.dev/devlog/pkg/entry"
	"tableflip.dev/devlog/pkg/journal"
	"tableflip.dev/devlog/pkg/projects"
)

func plain(t *testing.T) {
	t.Helper()
	prev := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = prev })
}

func TestJournalEmpty(t *testing.T) {
	plain(t)
	var buf bytes.Buffer
	pp := PrettyPrint{Out: &buf}

	pp.Journal()

	assert.Contains(t, buf.String(), "Daily Journal - 0 entries")
	assert.Contains(t, buf.String(), emptyJournal)
}

func TestJournalCard(t *testing.T) {
	plain(t)
	var buf bytes.Buffer
	pp := PrettyPrint{Out: &buf}

	day := time.Date(2024, time.March, 1, 12, 0, 0, 0, time.Local)
	pp.Journal(journal.Entry{
		ID:        "e1",
		Date:      entry.At(day),
		Completed: "shipped login\nfixed tests",
		Notes:     "tired",
	})

	out := buf.String()
	assert.Contains(t, out, "Daily Journal - 1 entry")
	assert.Contains(t, out, "Friday, March 1, 2024")
	assert.Contains(t, out, "  Completed\n    shipped login\n    fixed tests\n")
	assert.Contains(t, out, "  Notes\n    tired\n")
	assert.NotContains(t, out, "Learned")
	assert.NotContains(t, out, "e1")
}

func TestJournalShowID(t *testing.T) {
	plain(t)
	var buf bytes.Buffer
	pp := PrettyPrint{Out: &buf, ShowID: true}

	pp.Journal(journal.Entry{ID: "entry-1", Date: entry.At(time.Now()), Learned: "x"})

	lines := strings.Split(buf.String(), "\n")
	require.GreaterOrEqual(t, len(lines), 4)
	assert.True(t, strings.HasPrefix(lines[1], "entry-1"+strings.Repeat(" ", len(spacing)-len("entry-1"))))
	assert.True(t, strings.HasPrefix(lines[2], spacing+"  Learned"))
}

func TestProjectsEmpty(t *testing.T) {
	plain(t)
	var buf bytes.Buffer
	pp := PrettyPrint{Out: &buf}

	pp.Projects()

	assert.Contains(t, buf.String(), "My Projects & CV - 0 entries")
	assert.Contains(t, buf.String(), emptyProjects)
}

func TestProjectsCard(t *testing.T) {
	plain(t)
	var buf bytes.Buffer
	pp := PrettyPrint{Out: &buf}

	pp.Projects(
		projects.Project{
			ID:           "p1",
			Title:        "Portfolio",
			Description:  "Personal site",
			Technologies: []string{"Go", "HTMX"},
			GitHubURL:    "https://github.com/me/site",
		},
		projects.Project{ID: "p2", Title: "CLI", Description: "Small tool"},
	)

	out := buf.String()
	assert.Contains(t, out, "My Projects & CV - 2 entries")
	assert.Contains(t, out, "Portfolio\n  Personal site\n")
	assert.Contains(t, out, "[Go] [HTMX]")
	assert.Contains(t, out, "https://github.com/me/site")
	assert.NotContains(t, out, "Live Demo")
	assert.Less(t, strings.Index(out, "Portfolio"), strings.Index(out, "CLI"))
}

func TestJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, JSON(&buf, []projects.Project{{ID: "p1", Title: "t", Description: "d", Technologies: []string{}}}))

	var got []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "p1", got[0]["id"])
	assert.Contains(t, got[0], "githubUrl")
}

func TestJournalWrapsLongText(t *testing.T) {
	plain(t)
	var buf bytes.Buffer
	pp := PrettyPrint{Out: &buf, Width: 20}

	pp.Journal(journal.Entry{
		ID:      "e1",
		Date:    entry.At(time.Now()),
		Learned: "reflow keeps words whole when wrapping",
	})

	assert.Contains(t, buf.String(), "    reflow keeps words\n    whole when wrapping\n")
}
