package printers

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/muesli/reflow/wordwrap"

	"tableflip.dev/devlog/pkg/journal"
	"tableflip.dev/devlog/pkg/projects"
)

const (
	emptyJournal  = "No journal entries yet. Start documenting your journey!"
	emptyProjects = "No projects added yet. Start building your portfolio!"
)

type PrettyPrint struct {
	ShowID bool
	Out    io.Writer
	// Width wraps free text; zero means DefaultWidth.
	Width int
}

const DefaultWidth = 72

var (
	// uuid width plus two spaces.
	spacing = strings.Repeat(" ", 38)
)

func (pp *PrettyPrint) out() io.Writer {
	if pp.Out == nil {
		return color.Output
	}
	return pp.Out
}

func (pp *PrettyPrint) wrap(text string) []string {
	width := pp.Width
	if width <= 0 {
		width = DefaultWidth
	}
	return strings.Split(wordwrap.String(text, width), "\n")
}

func (pp *PrettyPrint) NewLine() {
	_, _ = fmt.Fprintln(pp.out(), "")
}

func (pp *PrettyPrint) Title(title string) {
	t := color.New(color.Bold, color.Underline)
	_, _ = t.Fprintln(pp.out(), title)
}

func (pp *PrettyPrint) TitleWithCount(title string, count int) {
	t := color.New(color.Bold, color.Underline)
	c := color.New(color.Faint)

	_, _ = t.Fprint(pp.out(), title)
	_, _ = c.Fprintf(pp.out(), " - %d", count)

	switch count {
	case 1:
		_, _ = c.Fprintln(pp.out(), " entry")
	default:
		_, _ = c.Fprintln(pp.out(), " entries")
	}
}

func (pp *PrettyPrint) empty(msg string) {
	f := color.New(color.Faint, color.Italic)
	_, _ = f.Fprintf(pp.out(), "  %s\n\n", msg)
}

// id prints the id column when ShowID is set, or the blank gutter for
// continuation lines when id is empty.
func (pp *PrettyPrint) id(id string) {
	if !pp.ShowID {
		return
	}
	y := color.New(color.FgHiYellow, color.Italic, color.Faint)
	if id == "" {
		_, _ = fmt.Fprint(pp.out(), spacing)
		return
	}
	_, _ = y.Fprint(pp.out(), id)
	if pad := len(spacing) - len(id); pad > 0 {
		_, _ = fmt.Fprint(pp.out(), strings.Repeat(" ", pad))
	} else {
		_, _ = fmt.Fprint(pp.out(), "  ")
	}
}

// Journal renders entries as cards, most recent first.
func (pp *PrettyPrint) Journal(entries ...journal.Entry) {
	pp.TitleWithCount("Daily Journal", len(entries))
	if len(entries) == 0 {
		pp.empty(emptyJournal)
		return
	}

	date := color.New(color.FgCyan)
	sections := []struct {
		label string
		c     *color.Color
		text  func(journal.Entry) string
	}{
		{"Completed", color.New(color.FgGreen, color.Bold), func(e journal.Entry) string { return e.Completed }},
		{"Learned", color.New(color.FgBlue, color.Bold), func(e journal.Entry) string { return e.Learned }},
		{"Notes", color.New(color.FgMagenta, color.Bold), func(e journal.Entry) string { return e.Notes }},
	}

	for _, e := range entries {
		pp.id(e.ID)
		_, _ = date.Fprintln(pp.out(), journal.FormatDate(e.Date.Time))
		for _, s := range sections {
			text := s.text(e)
			if text == "" {
				continue
			}
			pp.id("")
			_, _ = s.c.Fprintf(pp.out(), "  %s\n", s.label)
			for _, line := range pp.wrap(text) {
				pp.id("")
				_, _ = fmt.Fprintf(pp.out(), "    %s\n", line)
			}
		}
		pp.NewLine()
	}
}

// Projects renders the portfolio in insertion order.
func (pp *PrettyPrint) Projects(list ...projects.Project) {
	pp.TitleWithCount("My Projects & CV", len(list))
	if len(list) == 0 {
		pp.empty(emptyProjects)
		return
	}

	bold := color.New(color.Bold)
	faint := color.New(color.Faint)
	tag := color.New(color.FgBlue)

	for _, p := range list {
		pp.id(p.ID)
		_, _ = bold.Fprintln(pp.out(), p.Title)
		for _, line := range pp.wrap(p.Description) {
			pp.id("")
			_, _ = faint.Fprintf(pp.out(), "  %s\n", line)
		}

		tbl := uitable.New()
		tbl.Separator = "  "
		if len(p.Technologies) > 0 {
			tags := make([]string, len(p.Technologies))
			for i, t := range p.Technologies {
				tags[i] = tag.Sprintf("[%s]", t)
			}
			tbl.AddRow("  Tech", strings.Join(tags, " "))
		}
		if p.LiveURL != "" {
			tbl.AddRow("  Live Demo", p.LiveURL)
		}
		if p.GitHubURL != "" {
			tbl.AddRow("  GitHub", p.GitHubURL)
		}
		if len(tbl.Rows) > 0 {
			for _, line := range strings.Split(tbl.String(), "\n") {
				pp.id("")
				_, _ = fmt.Fprintln(pp.out(), line)
			}
		}
		pp.NewLine()
	}
}

// JSON writes v as indented JSON, for --json output.
func JSON(w io.Writer, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(b))
	return err
}
