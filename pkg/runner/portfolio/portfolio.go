package portfolio

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/fatih/color"

	"tableflip.dev/devlog/pkg/forms"
	"tableflip.dev/devlog/pkg/printers"
	"tableflip.dev/devlog/pkg/projects"
	"tableflip.dev/devlog/pkg/store"
)

func open(ctx context.Context, s store.Slots) (*projects.Store, error) {
	if s == nil {
		return nil, errors.New("can not open projects, no storage")
	}
	return projects.Load(ctx, store.NewRepository[projects.Project](s, projects.Slot))
}

func output(w io.Writer) io.Writer {
	if w == nil {
		return color.Output
	}
	return w
}

type Add struct {
	Title       string
	Description string
	LiveURL     string
	GitHubURL   string
	// Tech tags are added in order, then DropTech tags are removed.
	Tech     []string
	DropTech []string

	Interactive bool
	ShowID      bool
	JSON        bool

	// Form fills the draft when Interactive is set. Defaults to forms.Project.
	Form func(context.Context, *projects.Draft) error

	Slots store.Slots
	Out   io.Writer
}

func (n *Add) Do(ctx context.Context) error {
	p, err := open(ctx, n.Slots)
	if err != nil {
		return err
	}

	p.Open()
	d := p.Draft()
	d.Title = n.Title
	d.Description = n.Description
	d.LiveURL = n.LiveURL
	d.GitHubURL = n.GitHubURL
	for _, t := range n.Tech {
		if !p.AddTechnology(t) {
			slog.Debug("blank technology ignored")
		}
	}
	for _, t := range n.DropTech {
		p.RemoveTechnology(t)
	}

	if n.Interactive {
		form := n.Form
		if form == nil {
			form = forms.Project
		}
		if err := form(ctx, d); err != nil {
			p.Cancel()
			return err
		}
	}

	saved, ok, err := p.Save(ctx)
	if err != nil {
		return err
	}
	out := output(n.Out)
	if !ok {
		p.Cancel()
		slog.Debug("incomplete project draft ignored")
		if n.JSON {
			return printers.JSON(out, map[string]bool{"saved": false})
		}
		_, _ = color.New(color.Faint).Fprintln(out, "Nothing to save, a project needs a title and a description.")
		return nil
	}
	slog.Info("project saved", "id", saved.ID, "technologies", len(saved.Technologies))

	if n.JSON {
		return printers.JSON(out, saved)
	}
	pp := printers.PrettyPrint{ShowID: n.ShowID, Out: out}
	pp.NewLine()
	pp.Projects(p.List()...)
	return nil
}

type List struct {
	ShowID bool
	JSON   bool

	Slots store.Slots
	Out   io.Writer
}

func (n *List) Do(ctx context.Context) error {
	p, err := open(ctx, n.Slots)
	if err != nil {
		return err
	}
	out := output(n.Out)
	if n.JSON {
		return printers.JSON(out, p.List())
	}
	pp := printers.PrettyPrint{ShowID: n.ShowID, Out: out}
	pp.NewLine()
	pp.Projects(p.List()...)
	return nil
}

type Delete struct {
	IDs []string
	// JSON prints the ids actually removed as a JSON array.
	JSON bool

	Slots store.Slots
	Out   io.Writer
}

func (n *Delete) Do(ctx context.Context) error {
	p, err := open(ctx, n.Slots)
	if err != nil {
		return err
	}
	out := output(n.Out)
	deleted := []string{}
	for _, id := range n.IDs {
		removed, err := p.Delete(ctx, id)
		if err != nil {
			return err
		}
		if !removed {
			slog.Debug("project not found", "id", id)
			continue
		}
		slog.Info("project deleted", "id", id)
		deleted = append(deleted, id)
		if !n.JSON {
			_, _ = fmt.Fprintf(out, "Deleted %s\n", id)
		}
	}
	if n.JSON {
		return printers.JSON(out, deleted)
	}
	return nil
}
