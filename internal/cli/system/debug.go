package system

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/julianstephens/dentaplan/internal/cli"
	"github.com/julianstephens/dentaplan/internal/logger"
)

type DebugCmd struct {
	DBPath  *DebugDBPathCmd  `cmd:"" help:"Show database path."`
	LogPath *DebugLogPathCmd `cmd:"" help:"Show log file path."`
	Dump    *DebugDumpCmd    `cmd:"" help:"Dump stored collections as JSON."`
}

type DebugDBPathCmd struct{}

func (cmd *DebugDBPathCmd) Run(ctx *cli.Context) error {
	return printJSON(map[string]string{
		"path": ctx.Store.GetConfigPath(),
	})
}

type DebugLogPathCmd struct{}

func (cmd *DebugLogPathCmd) Run(ctx *cli.Context) error {
	return printJSON(map[string]string{
		"path": logger.Path(),
	})
}

type dumper interface {
	Dump() (map[string]string, error)
}

type DebugDumpCmd struct {
	Key string `arg:"" optional:"" help:"Collection key to dump (dentalSettings, dentalPatients, dentalAppointments)."`
}

func (cmd *DebugDumpCmd) Run(ctx *cli.Context) error {
	d, ok := ctx.Store.(dumper)
	if !ok {
		return fmt.Errorf("storage backend does not support dumping")
	}
	values, err := d.Dump()
	if err != nil {
		return fmt.Errorf("failed to dump storage: %w", err)
	}

	if cmd.Key != "" {
		raw, ok := values[cmd.Key]
		if !ok {
			keys := make([]string, 0, len(values))
			for k := range values {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			return fmt.Errorf("no value stored under %q (have %v)", cmd.Key, keys)
		}
		return printJSON(json.RawMessage(raw))
	}

	out := make(map[string]json.RawMessage, len(values))
	for k, v := range values {
		out[k] = json.RawMessage(v)
	}
	return printJSON(out)
}

func printJSON(v any) error {
	jsonBytes, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	fmt.Println(string(jsonBytes))
	return nil
}
