package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/KodekoStudios/akore/internal/kode"
	"github.com/KodekoStudios/akore/internal/state"
)

// newTranspileCmd creates the transpile command.
func newTranspileCmd() *cobra.Command {
	var (
		outPath string
		watch   bool
	)

	cmd := &cobra.Command{
		Use:   "transpile [file]",
		Short: "Transpile a source file (or stdin) with the built-in grammar",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := GetConfig(cmd.Context())
			renderer := GetRenderer(cmd.Context())
			logger := GetLogger(cmd.Context())

			source := "-"
			if len(args) == 1 {
				source = args[0]
			}
			if watch && source == "-" {
				return fmt.Errorf("--watch requires a file argument")
			}

			drv, err := kode.New(logger, cfg.Strict)
			if err != nil {
				return err
			}

			store, err := openStore(cfg)
			if err != nil {
				logger.Warn("run history disabled", "error", err)
				store = nil
			}
			if store != nil {
				defer store.Close()
			}

			runOnce := func() error {
				text, err := readSource(cmd.InOrStdin(), source)
				if err != nil {
					return err
				}
				started := time.Now()
				out, terr := drv.Transpile(text)
				recordRun(logger, store, source, time.Since(started), terr)
				if terr != nil {
					return terr
				}
				return writeResult(renderer.Out(), outPath, out)
			}

			if !watch {
				return runOnce()
			}

			if err := runOnce(); err != nil {
				renderer.Error(err)
			}
			return watchSource(cmd, source, func() {
				if err := runOnce(); err != nil {
					renderer.Error(err)
				} else {
					renderer.Dimf("retranspiled %s", source)
				}
			})
		},
	}

	cmd.Flags().StringVar(&outPath, "out", "", "Write output to a file instead of stdout")
	cmd.Flags().BoolVar(&watch, "watch", false, "Re-transpile whenever the source file changes")
	return cmd
}

// readSource reads the whole source text from a file or stdin ("-").
func readSource(stdin io.Reader, source string) (string, error) {
	if source == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(source)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", source, err)
	}
	return string(data), nil
}

// writeResult writes the transpiled output to a file or the writer.
func writeResult(w io.Writer, outPath, out string) error {
	if outPath == "" {
		_, err := fmt.Fprintln(w, out)
		return err
	}
	if err := os.WriteFile(outPath, []byte(out+"\n"), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", outPath, err)
	}
	return nil
}

// recordRun persists one run; failures only warn.
func recordRun(logger *slog.Logger, store *state.SQLiteStore, source string, elapsed time.Duration, terr error) {
	if store == nil {
		return
	}
	run := &state.Run{Source: source, Status: state.RunStatusCompleted, Duration: elapsed}
	if terr != nil {
		run.Status = state.RunStatusFailed
		run.Error = terr.Error()
	}
	if err := store.RecordRun(run); err != nil {
		logger.Warn("failed to record run", "error", err)
	}
}

// watchSource re-runs fn whenever the source file is written. It
// returns when the command context is cancelled or the watcher closes.
func watchSource(cmd *cobra.Command, source string, fn func()) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to start watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(source); err != nil {
		return fmt.Errorf("failed to watch %s: %w", source, err)
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Watching %s (ctrl-c to stop)\n", source)

	for {
		select {
		case <-cmd.Context().Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
				fn()
			}
		case werr, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			return werr
		}
	}
}
