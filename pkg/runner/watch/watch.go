package watch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/fatih/color"

	"tableflip.dev/devlog/pkg/journal"
	"tableflip.dev/devlog/pkg/printers"
	"tableflip.dev/devlog/pkg/projects"
	"tableflip.dev/devlog/pkg/store"
)

const (
	PanelJournal  = "journal"
	PanelProjects = "projects"
)

// Watch renders the chosen panels and renders them again whenever another
// process rewrites their slots. It returns when ctx is done.
type Watch struct {
	// Panels to show, PanelJournal and/or PanelProjects. Empty means both.
	Panels []string
	ShowID bool

	// OnClose runs once for each panel when the watch ends.
	OnClose func(panel string)

	Slots store.Slots
	Out   io.Writer
}

type panel struct {
	name   string
	slot   string
	reload func(context.Context) error
	render func(*printers.PrettyPrint)
	close  func()
}

func (n *Watch) panels(ctx context.Context) ([]*panel, error) {
	names := n.Panels
	if len(names) == 0 {
		names = []string{PanelJournal, PanelProjects}
	}

	var out []*panel
	for _, name := range names {
		switch name {
		case PanelJournal:
			j, err := journal.Load(ctx, store.NewRepository[journal.Entry](n.Slots, journal.Slot))
			if err != nil {
				return nil, err
			}
			j.OnClose = n.closer(name)
			out = append(out, &panel{
				name:   name,
				slot:   journal.Slot,
				reload: j.Reload,
				render: func(pp *printers.PrettyPrint) { pp.Journal(j.List()...) },
				close:  j.Close,
			})
		case PanelProjects:
			p, err := projects.Load(ctx, store.NewRepository[projects.Project](n.Slots, projects.Slot))
			if err != nil {
				return nil, err
			}
			p.OnClose = n.closer(name)
			out = append(out, &panel{
				name:   name,
				slot:   projects.Slot,
				reload: p.Reload,
				render: func(pp *printers.PrettyPrint) { pp.Projects(p.List()...) },
				close:  p.Close,
			})
		default:
			return nil, fmt.Errorf("unknown panel %q, want %s or %s", name, PanelJournal, PanelProjects)
		}
	}
	return out, nil
}

func (n *Watch) closer(name string) func() {
	return func() {
		if n.OnClose != nil {
			n.OnClose(name)
		}
	}
}

func (n *Watch) Do(ctx context.Context) error {
	if n.Slots == nil {
		return errors.New("can not watch, no storage")
	}
	out := n.Out
	if out == nil {
		out = color.Output
	}
	pp := &printers.PrettyPrint{ShowID: n.ShowID, Out: out}

	panels, err := n.panels(ctx)
	if err != nil {
		return err
	}
	defer func() {
		for _, p := range panels {
			p.close()
		}
	}()

	events, err := store.Watch(ctx, n.Slots)
	if err != nil {
		return err
	}

	for _, p := range panels {
		pp.NewLine()
		p.render(pp)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			for _, p := range panels {
				if ev.Type != store.EventResync && ev.Slot != p.slot {
					continue
				}
				if err := p.reload(ctx); err != nil {
					// Keep the last good list until the next event.
					slog.Warn("reload failed", "panel", p.name, "err", err)
					continue
				}
				slog.Debug("panel reloaded", "panel", p.name, "event", ev.Type.String())
				pp.NewLine()
				p.render(pp)
			}
		}
	}
}
