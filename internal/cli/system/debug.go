package system

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/julianstephens/streakguard/internal/cli"
	"github.com/julianstephens/streakguard/internal/storage"
)

type DebugCmd struct {
	DBPath   *DebugDBPathCmd   `cmd:"" help:"Show database path."`
	DumpKey  *DebugDumpKeyCmd  `cmd:"" help:"Dump the raw value of one key as JSON."`
	DumpAll  *DebugDumpAllCmd  `cmd:"" help:"Dump the whole key space as JSON."`
	DumpView *DebugDumpViewCmd `cmd:"" help:"Dump the computed statistics as JSON."`
}

type DebugDBPathCmd struct{}

func (cmd *DebugDBPathCmd) Run(ctx *cli.Context) error {
	return printJSON(map[string]string{
		"path":      ctx.Store.GetConfigPath(),
		"configDir": ctx.ConfigDir,
	})
}

type DebugDumpKeyCmd struct {
	Key string `arg:"" help:"Key to dump (for example streakDays)."`
}

func (cmd *DebugDumpKeyCmd) Run(ctx *cli.Context) error {
	raw, err := ctx.Store.Get(cmd.Key)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("key not found: %s", cmd.Key)
		}
		return fmt.Errorf("failed to read key: %w", err)
	}
	if !json.Valid(raw) {
		return fmt.Errorf("value of %s is not valid JSON: %q", cmd.Key, string(raw))
	}
	return printJSON(map[string]json.RawMessage{cmd.Key: raw})
}

type DebugDumpAllCmd struct{}

func (cmd *DebugDumpAllCmd) Run(ctx *cli.Context) error {
	data, err := storage.ExportAll(ctx.Store)
	if err != nil {
		return err
	}
	// Malformed values would make the whole document unencodable
	for k, v := range data {
		if !json.Valid(v) {
			data[k], _ = json.Marshal(string(v))
		}
	}
	return printJSON(data)
}

type DebugDumpViewCmd struct{}

func (cmd *DebugDumpViewCmd) Run(ctx *cli.Context) error {
	return printJSON(ctx.Tracker.Stats())
}

func printJSON(v any) error {
	jsonBytes, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	fmt.Println(string(jsonBytes))
	return nil
}
