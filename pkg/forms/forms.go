// Package forms collects journal and project drafts interactively.
package forms

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/samber/lo"

	"tableflip.dev/devlog/pkg/journal"
	"tableflip.dev/devlog/pkg/projects"
)

// ErrNotTerminal is returned when a form is requested without a terminal
// on stdin.
var ErrNotTerminal = errors.New("forms: interactive input needs a terminal")

var (
	colorAccent = lipgloss.Color("#7C3AED")
	colorGreen  = lipgloss.Color("#10B981")
	colorFg     = lipgloss.Color("#E5E7EB")
	colorDim    = lipgloss.Color("#6B7280")
)

func theme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(colorAccent)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(colorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(colorFg)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(colorAccent)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(colorAccent)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(colorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(colorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(colorDim)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(colorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(colorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(colorDim)

	return t
}

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func checkTerminal() error {
	if !IsTerminal(os.Stdin) {
		return ErrNotTerminal
	}
	return nil
}

func required(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", field)
		}
		return nil
	}
}

func run(ctx context.Context, form *huh.Form) error {
	return form.WithTheme(theme()).WithShowHelp(false).RunWithContext(ctx)
}

// Journal fills d from a three field form. Any of the fields may be left
// blank; the journal rejects a draft that is blank everywhere.
func Journal(ctx context.Context, d *journal.Draft) error {
	if err := checkTerminal(); err != nil {
		return err
	}
	return run(ctx, journalForm(d))
}

func journalForm(d *journal.Draft) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewText().
				Title("What did you complete today?").
				Value(&d.Completed),
			huh.NewText().
				Title("What did you learn?").
				Value(&d.Learned),
			huh.NewText().
				Title("Notes").
				Value(&d.Notes),
		),
	)
}

// Project fills d, then prompts for technologies one at a time until a
// blank tag is entered, then offers to remove any of them.
func Project(ctx context.Context, d *projects.Draft) error {
	if err := checkTerminal(); err != nil {
		return err
	}
	if err := run(ctx, projectForm(d)); err != nil {
		return err
	}

	for {
		var tag string
		if err := run(ctx, tagForm(&tag, d.Technologies)); err != nil {
			return err
		}
		if !d.AddTechnology(tag) {
			break
		}
	}

	if len(d.Technologies) == 0 {
		return nil
	}
	var drop []string
	if err := run(ctx, dropForm(&drop, d.Technologies)); err != nil {
		return err
	}
	for _, t := range drop {
		d.RemoveTechnology(t)
	}
	return nil
}

func projectForm(d *projects.Draft) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Project Title").
				Value(&d.Title).
				Validate(required("title")),
			huh.NewText().
				Title("Description").
				Value(&d.Description).
				Validate(required("description")),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Live URL").
				Placeholder("https://").
				Value(&d.LiveURL),
			huh.NewInput().
				Title("GitHub URL").
				Placeholder("https://github.com/").
				Value(&d.GitHubURL),
		),
	)
}

func tagForm(tag *string, current []string) *huh.Form {
	desc := "Leave blank to finish."
	if len(current) > 0 {
		desc = fmt.Sprintf("Added: %s. Leave blank to finish.", strings.Join(current, ", "))
	}
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Add Technology").
				Description(desc).
				Placeholder("Go").
				Value(tag),
		),
	)
}

func dropForm(drop *[]string, current []string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewMultiSelect[string]().
				Title("Remove technologies").
				Options(huh.NewOptions(lo.Uniq(current)...)...).
				Value(drop),
		),
	)
}

