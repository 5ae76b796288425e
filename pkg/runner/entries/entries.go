package entries

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/fatih/color"
	"github.com/samber/lo"

	"tableflip.dev/devlog/pkg/forms"
	"tableflip.dev/devlog/pkg/journal"
	"tableflip.dev/devlog/pkg/printers"
	"tableflip.dev/devlog/pkg/store"
	"tableflip.dev/devlog/pkg/timeutil"
)

func open(ctx context.Context, s store.Slots) (*journal.Store, error) {
	if s == nil {
		return nil, errors.New("can not open journal, no storage")
	}
	return journal.Load(ctx, store.NewRepository[journal.Entry](s, journal.Slot))
}

func output(w io.Writer) io.Writer {
	if w == nil {
		return color.Output
	}
	return w
}

type Add struct {
	Draft       journal.Draft
	Interactive bool
	ShowID      bool
	JSON        bool

	// Form fills the draft when Interactive is set. Defaults to forms.Journal.
	Form func(context.Context, *journal.Draft) error

	Slots store.Slots
	Out   io.Writer
}

func (n *Add) Do(ctx context.Context) error {
	j, err := open(ctx, n.Slots)
	if err != nil {
		return err
	}

	j.Open()
	*j.Draft() = n.Draft
	if n.Interactive {
		form := n.Form
		if form == nil {
			form = forms.Journal
		}
		if err := form(ctx, j.Draft()); err != nil {
			j.Cancel()
			return err
		}
	}

	e, ok, err := j.Save(ctx)
	if err != nil {
		return err
	}
	out := output(n.Out)
	if !ok {
		j.Cancel()
		slog.Debug("blank journal draft ignored")
		if n.JSON {
			return printers.JSON(out, map[string]bool{"saved": false})
		}
		_, _ = color.New(color.Faint).Fprintln(out, "Nothing to save.")
		return nil
	}
	slog.Info("journal entry saved", "id", e.ID)

	if n.JSON {
		return printers.JSON(out, e)
	}
	pp := printers.PrettyPrint{ShowID: n.ShowID, Out: out}
	pp.NewLine()
	pp.Journal(j.List()...)
	return nil
}

type List struct {
	ShowID bool
	JSON   bool
	// Since limits the list to entries dated inside the window. Zero is no limit.
	Since time.Duration
	Now   func() time.Time

	Slots store.Slots
	Out   io.Writer
}

func (n *List) Do(ctx context.Context) error {
	j, err := open(ctx, n.Slots)
	if err != nil {
		return err
	}
	now := time.Now
	if n.Now != nil {
		now = n.Now
	}
	at := now()
	list := lo.Filter(j.List(), func(e journal.Entry, _ int) bool {
		return timeutil.Within(e.Date.Time, at, n.Since)
	})

	out := output(n.Out)
	if n.JSON {
		return printers.JSON(out, list)
	}
	pp := printers.PrettyPrint{ShowID: n.ShowID, Out: out}
	pp.NewLine()
	pp.Journal(list...)
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
	j, err := open(ctx, n.Slots)
	if err != nil {
		return err
	}
	out := output(n.Out)
	deleted := []string{}
	for _, id := range n.IDs {
		removed, err := j.Delete(ctx, id)
		if err != nil {
			return err
		}
		if !removed {
			slog.Debug("journal entry not found", "id", id)
			continue
		}
		slog.Info("journal entry deleted", "id", id)
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
