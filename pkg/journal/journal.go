// Package journal manages the daily journal: a most-recent-first list of
// free-text entries kept in the "journalEntries" slot.
package journal

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/samber/lo"

	"tableflip.dev/devlog/pkg/entry"
	"tableflip.dev/devlog/pkg/ident"
	"tableflip.dev/devlog/pkg/panel"
	"tableflip.dev/devlog/pkg/store"
)

// Slot is the storage key holding the journal.
const Slot = "journalEntries"

// ErrEmptyDraft is returned by Draft.Build when every field is blank.
var ErrEmptyDraft = errors.New("journal: entry needs something completed, learned or noted")

// Entry is one saved journal entry. Entries are never edited in place.
type Entry struct {
	ID        string          `json:"id"`
	Date      entry.Timestamp `json:"date"`
	Completed string          `json:"completed"`
	Learned   string          `json:"learned"`
	Notes     string          `json:"notes"`
}

// Draft is the in-progress "new entry" form.
type Draft struct {
	Completed string
	Learned   string
	Notes     string
}

// Empty reports whether all fields are blank.
func (d Draft) Empty() bool {
	return strings.TrimSpace(d.Completed) == "" &&
		strings.TrimSpace(d.Learned) == "" &&
		strings.TrimSpace(d.Notes) == ""
}

// Build finalizes the draft into an entry.
func (d Draft) Build(id string, now time.Time) (Entry, error) {
	if d.Empty() {
		return Entry{}, ErrEmptyDraft
	}
	return Entry{
		ID:        id,
		Date:      entry.At(now),
		Completed: d.Completed,
		Learned:   d.Learned,
		Notes:     d.Notes,
	}, nil
}

// Store is the journal panel: the list, its draft and the form state.
// It is not safe for concurrent use.
type Store struct {
	panel.Machine

	IDs ident.Generator
	Now func() time.Time

	repo    store.Repository[Entry]
	entries []Entry
	draft   Draft
}

// Load reads the journal once from repo.
func Load(ctx context.Context, repo store.Repository[Entry]) (*Store, error) {
	entries, err := repo.Load(ctx)
	if err != nil {
		return nil, err
	}
	return &Store{
		IDs:     ident.Default,
		Now:     time.Now,
		repo:    repo,
		entries: entries,
	}, nil
}

// Draft returns the editable draft.
func (s *Store) Draft() *Draft { return &s.draft }

// Save commits the current draft. A blank draft is ignored: ok is false and
// nothing changes.
func (s *Store) Save(ctx context.Context) (Entry, bool, error) {
	if s.draft.Empty() {
		return Entry{}, false, nil
	}
	e, err := s.draft.Build(s.IDs.NewID(), s.Now())
	if err != nil {
		return Entry{}, false, err
	}

	s.entries = append([]Entry{e}, s.entries...)
	s.draft = Draft{}
	s.Commit()
	return e, true, s.repo.Save(ctx, s.entries)
}

// Add saves a new entry from the given fields, most recent first.
func (s *Store) Add(ctx context.Context, completed, learned, notes string) (Entry, bool, error) {
	d := Draft{Completed: completed, Learned: learned, Notes: notes}
	if d.Empty() {
		return Entry{}, false, nil
	}
	s.draft = d
	return s.Save(ctx)
}

// Delete removes the entry with id. Unknown ids are ignored.
func (s *Store) Delete(ctx context.Context, id string) (bool, error) {
	kept := lo.Reject(s.entries, func(e Entry, _ int) bool {
		return e.ID == id
	})
	if len(kept) == len(s.entries) {
		return false, nil
	}
	s.entries = kept
	return true, s.repo.Save(ctx, s.entries)
}

// List returns the entries in stored order.
func (s *Store) List() []Entry {
	return append([]Entry{}, s.entries...)
}

func (s *Store) Len() int { return len(s.entries) }

// Get finds an entry by id.
func (s *Store) Get(id string) (Entry, bool) {
	return lo.Find(s.entries, func(e Entry) bool {
		return e.ID == id
	})
}

// Reload replaces the in-memory list with the stored one, for when another
// process rewrote or cleared the slot.
func (s *Store) Reload(ctx context.Context) error {
	entries, err := s.repo.Load(ctx)
	if err != nil {
		return err
	}
	s.entries = entries
	return nil
}

const dateLayout = "Monday, January 2, 2006"

// FormatDate renders t as e.g. "Friday, March 1, 2024" in local time.
func FormatDate(t time.Time) string {
	return t.Local().Format(dateLayout)
}
