package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	uv "github.com/charmbracelet/ultraviolet"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/ikanago/toysh/pkg/editor"
	"github.com/ikanago/toysh/pkg/termui"
)

func newKeysCommand(cfg *Config) *cobra.Command {
	return &cobra.Command{
		Use:   "keys",
		Short: "Print decoded key presses until Esc",
		Long: `keys puts the terminal into raw mode and prints every key the editor
would receive, one per line. It is useful for checking what a terminal sends
for a given key. Press Esc to stop.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			closeLog, err := setupLogging(*cfg, true)
			if err != nil {
				return err
			}
			defer closeLog() //nolint:errcheck

			term := termui.NewProcessTerminal()
			return dumpKeys(cmd.Context(), term, term)
		},
	}
}

// dumpKeys reads keys from term in raw mode and writes one line per key to
// out. It stops at Esc, end of input or context cancellation.
func dumpKeys(ctx context.Context, term termui.Terminal, out io.Writer) error {
	raw, err := termui.EnterRawMode(term)
	if err != nil {
		return err
	}
	defer raw.Release()

	input := termui.NewInput(term)
	for {
		if err := ctx.Err(); err != nil {
			return nil
		}
		ready, err := input.Poll(editor.DefaultPollInterval)
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		if !ready {
			continue
		}
		for {
			key, ok := input.Next()
			if !ok {
				break
			}
			if _, err := fmt.Fprint(out, describeKey(key)+"\r\n"); err != nil {
				return err
			}
			if key.Code == uv.KeyEscape && key.Mod == 0 {
				slog.DebugContext(ctx, "keys: escape pressed")
				return nil
			}
		}
	}
}

func describeKey(key uv.Key) string {
	var mods string
	if key.Mod&uv.ModCtrl != 0 {
		mods += "ctrl+"
	}
	if key.Mod&uv.ModAlt != 0 {
		mods += "alt+"
	}
	if key.Mod&uv.ModShift != 0 {
		mods += "shift+"
	}
	return fmt.Sprintf("%scode=%U text=%q", mods, key.Code, key.Text)
}
