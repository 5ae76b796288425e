// Package projects manages the portfolio: an insertion-ordered list of
// project records kept in the "projects" slot.
package projects

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/samber/lo"

	"tableflip.dev/devlog/pkg/entry"
	"tableflip.dev/devlog/pkg/ident"
	"tableflip.dev/devlog/pkg/panel"
	"tableflip.dev/devlog/pkg/store"
)

// Slot is the storage key holding the portfolio.
const Slot = "projects"

// ErrIncompleteDraft is returned by Draft.Build without a title and description.
var ErrIncompleteDraft = errors.New("projects: title and description are required")

// Project is one saved portfolio record.
type Project struct {
	ID           string          `json:"id"`
	Title        string          `json:"title"`
	Description  string          `json:"description"`
	Technologies []string        `json:"technologies"`
	LiveURL      string          `json:"liveUrl"`
	GitHubURL    string          `json:"githubUrl"`
	DateAdded    entry.Timestamp `json:"dateAdded"`
}

// MarshalJSON writes missing technologies as [] so records loaded without
// the field never save back as null.
func (p Project) MarshalJSON() ([]byte, error) {
	type plain Project
	if p.Technologies == nil {
		p.Technologies = []string{}
	}
	return json.Marshal(plain(p))
}

// Draft is the in-progress "new project" form. Technologies are collected
// one tag at a time.
type Draft struct {
	Title        string
	Description  string
	Technologies []string
	LiveURL      string
	GitHubURL    string
}

// Complete reports whether the draft has the required fields.
func (d *Draft) Complete() bool {
	return strings.TrimSpace(d.Title) != "" && strings.TrimSpace(d.Description) != ""
}

// AddTechnology appends tag, trimmed, unless it is blank. Duplicates are kept.
func (d *Draft) AddTechnology(tag string) bool {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return false
	}
	d.Technologies = append(d.Technologies, tag)
	return true
}

// RemoveTechnology drops every tag equal to tag.
func (d *Draft) RemoveTechnology(tag string) {
	d.Technologies = lo.Without(d.Technologies, tag)
}

// Build finalizes the draft into a project.
func (d *Draft) Build(id string, now time.Time) (Project, error) {
	if !d.Complete() {
		return Project{}, ErrIncompleteDraft
	}
	return Project{
		ID:           id,
		Title:        d.Title,
		Description:  d.Description,
		Technologies: append([]string{}, d.Technologies...),
		LiveURL:      d.LiveURL,
		GitHubURL:    d.GitHubURL,
		DateAdded:    entry.At(now),
	}, nil
}

// Store is the projects panel: the list, its draft and the form state.
// It is not safe for concurrent use.
type Store struct {
	panel.Machine

	IDs ident.Generator
	Now func() time.Time

	repo     store.Repository[Project]
	projects []Project
	draft    Draft
}

// Load reads the portfolio once from repo.
func Load(ctx context.Context, repo store.Repository[Project]) (*Store, error) {
	projects, err := repo.Load(ctx)
	if err != nil {
		return nil, err
	}
	return &Store{
		IDs:      ident.Default,
		Now:      time.Now,
		repo:     repo,
		projects: projects,
	}, nil
}

// Draft returns the editable draft.
func (s *Store) Draft() *Draft { return &s.draft }

// AddTechnology appends a tag to the current draft.
func (s *Store) AddTechnology(tag string) bool { return s.draft.AddTechnology(tag) }

// RemoveTechnology removes a tag from the current draft.
func (s *Store) RemoveTechnology(tag string) { s.draft.RemoveTechnology(tag) }

// Save commits the current draft. An incomplete draft is ignored: ok is
// false and nothing changes.
func (s *Store) Save(ctx context.Context) (Project, bool, error) {
	if !s.draft.Complete() {
		return Project{}, false, nil
	}
	p, err := s.draft.Build(s.IDs.NewID(), s.Now())
	if err != nil {
		return Project{}, false, err
	}

	s.projects = append(s.projects, p)
	s.draft = Draft{}
	s.Commit()
	return p, true, s.repo.Save(ctx, s.projects)
}

// Add saves a new project at the end of the list.
func (s *Store) Add(ctx context.Context, title, description string, technologies []string, liveURL, githubURL string) (Project, bool, error) {
	d := Draft{
		Title:        title,
		Description:  description,
		Technologies: technologies,
		LiveURL:      liveURL,
		GitHubURL:    githubURL,
	}
	if !d.Complete() {
		return Project{}, false, nil
	}
	s.draft = d
	return s.Save(ctx)
}

// Delete removes the project with id. Unknown ids are ignored.
func (s *Store) Delete(ctx context.Context, id string) (bool, error) {
	kept := lo.Reject(s.projects, func(p Project, _ int) bool {
		return p.ID == id
	})
	if len(kept) == len(s.projects) {
		return false, nil
	}
	s.projects = kept
	return true, s.repo.Save(ctx, s.projects)
}

// List returns the projects in insertion order.
func (s *Store) List() []Project {
	return append([]Project{}, s.projects...)
}

func (s *Store) Len() int { return len(s.projects) }

// Get finds a project by id.
func (s *Store) Get(id string) (Project, bool) {
	return lo.Find(s.projects, func(p Project) bool {
		return p.ID == id
	})
}

// Reload replaces the in-memory list with the stored one.
func (s *Store) Reload(ctx context.Context) error {
	projects, err := s.repo.Load(ctx)
	if err != nil {
		return err
	}
	s.projects = projects
	return nil
}
