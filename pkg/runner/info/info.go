package info

import (
	"context"
	"errors"
	"io"
	"net/url"
	"os"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/devlog/pkg/config"
	"tableflip.dev/devlog/pkg/journal"
	"tableflip.dev/devlog/pkg/printers"
	"tableflip.dev/devlog/pkg/projects"
	"tableflip.dev/devlog/pkg/store"
)

type Info struct {
	Config *config.Config
	Slots  store.Slots
	JSON   bool
	Out    io.Writer
}

// Report is what info prints.
type Report struct {
	ConfigPathEnv string `json:"configPathEnv,omitempty"`
	ConfigFile    string `json:"configFile,omitempty"`
	Path          string `json:"path"`
	Storage       string `json:"storage"`
	Journal       int    `json:"journalEntries"`
	Projects      int    `json:"projects"`
}

func (n *Info) Do(ctx context.Context) error {
	if n.Config == nil {
		return errors.New("can not report info, no config")
	}
	if n.Slots == nil {
		return errors.New("can not report info, no storage")
	}

	entries, err := store.Load[journal.Entry](ctx, n.Slots, journal.Slot)
	if err != nil {
		return err
	}
	list, err := store.Load[projects.Project](ctx, n.Slots, projects.Slot)
	if err != nil {
		return err
	}

	r := Report{
		ConfigPathEnv: os.Getenv(config.EnvConfigPath),
		ConfigFile:    n.Config.File,
		Path:          n.Config.BasePath(),
		Storage:       string(n.Config.Backend()),
		Journal:       len(entries),
		Projects:      len(list),
	}

	out := n.Out
	if out == nil {
		out = color.Output
	}
	if n.JSON {
		return printers.JSON(out, r)
	}

	env := r.ConfigPathEnv
	if env == "" {
		env = "not set"
	}
	file := r.ConfigFile
	if file == "" {
		file = "none, using defaults"
	}

	tbl := uitable.New()
	tbl.AddRow(config.EnvConfigPath+":", env)
	tbl.AddRow("Config file:", file)
	tbl.AddRow("Data path:", r.Path)
	tbl.AddRow("Storage:", r.Storage)
	if n.Config.Backend() == store.BackendRedis {
		tbl.AddRow("Redis:", redactURL(n.Config.RedisURL())+" ("+n.Config.RedisPrefix()+")")
	}
	tbl.AddRow("Journal entries:", r.Journal)
	tbl.AddRow("Projects:", r.Projects)

	_, err = io.WriteString(out, tbl.String()+"\n")
	return err
}

// redactURL hides the password of a redis url.
func redactURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return "<unparseable url>"
	}
	return u.Redacted()
}
