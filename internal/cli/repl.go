package cli

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"

	"github.com/KodekoStudios/akore/internal/kode"
)

// newREPLCmd creates the repl command.
func newREPLCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "repl",
		Short: "Interactively transpile lines with the built-in grammar",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := GetConfig(cmd.Context())
			renderer := GetRenderer(cmd.Context())
			logger := GetLogger(cmd.Context())

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

			historyFile := filepath.Join(filepath.Dir(cfg.StatePath), "repl_history")
			rl, err := readline.NewEx(&readline.Config{
				Prompt:          "akore> ",
				HistoryFile:     historyFile,
				InterruptPrompt: "^C",
				EOFPrompt:       ".quit",
			})
			if err != nil {
				return fmt.Errorf("failed to initialize REPL: %w", err)
			}
			defer func() { _ = rl.Close() }()

			fmt.Fprintln(cmd.OutOrStdout(), "akore REPL - type .quit to exit")

			for {
				line, err := rl.Readline()
				if errors.Is(err, readline.ErrInterrupt) {
					continue
				}
				if errors.Is(err, io.EOF) {
					return nil
				}
				if err != nil {
					return err
				}

				line = strings.TrimSpace(line)
				switch line {
				case "":
					continue
				case ".quit", ".exit":
					return nil
				}

				started := time.Now()
				out, terr := drv.Transpile(line)
				recordRun(logger, store, "-", time.Since(started), terr)
				if terr != nil {
					renderer.Error(terr)
					continue
				}
				fmt.Fprintln(cmd.OutOrStdout(), out)
			}
		},
	}
	return cmd
}
