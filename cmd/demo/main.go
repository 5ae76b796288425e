// Command demo fills the configured storage with sample journal entries and
// projects.
package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"tableflip.dev/devlog/pkg/config"
	"tableflip.dev/devlog/pkg/journal"
	"tableflip.dev/devlog/pkg/printers"
	"tableflip.dev/devlog/pkg/projects"
	"tableflip.dev/devlog/pkg/store"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load(config.New())
	if err != nil {
		log.Fatal(err)
	}
	slots, err := store.Open(ctx, cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer slots.Close()

	j, err := journal.Load(ctx, store.NewRepository[journal.Entry](slots, journal.Slot))
	if err != nil {
		log.Fatal(err)
	}
	days := []journal.Draft{
		{Completed: "Set up the repo and CI", Learned: "go test -race catches more than I expected"},
		{Completed: "Login page", Learned: "CSS grid areas", Notes: "Ask for a design review"},
		{Learned: "How fsnotify batches renames"},
	}
	start := time.Now().AddDate(0, 0, -len(days))
	for i, d := range days {
		at := start.AddDate(0, 0, i)
		j.Now = func() time.Time { return at }
		if _, _, err := j.Add(ctx, d.Completed, d.Learned, d.Notes); err != nil {
			log.Fatal(err)
		}
	}

	p, err := projects.Load(ctx, store.NewRepository[projects.Project](slots, projects.Slot))
	if err != nil {
		log.Fatal(err)
	}
	if _, _, err := p.Add(ctx, "devlog", "Developer journal and portfolio on the command line.",
		[]string{"Go", "Cobra", "SQLite"}, "", "https://github.com/example/devlog"); err != nil {
		log.Fatal(err)
	}
	if _, _, err := p.Add(ctx, "Weather board", "Dashboard for local sensors.",
		[]string{"TypeScript", "Redis"}, "https://weather.example.com", ""); err != nil {
		log.Fatal(err)
	}

	fmt.Printf("seeded %s storage at %s\n", cfg.Backend(), cfg.BasePath())
	pp := printers.PrettyPrint{}
	pp.Journal(j.List()...)
	pp.Projects(p.List()...)
}
