package cli

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/KodekoStudios/akore/internal/kode"
)

// newTokensCmd creates the tokens command.
func newTokensCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tokens [file]",
		Short: "Dump the token stream the built-in grammar produces",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := GetConfig(cmd.Context())
			logger := GetLogger(cmd.Context())

			source := "-"
			if len(args) == 1 {
				source = args[0]
			}
			text, err := readSource(cmd.InOrStdin(), source)
			if err != nil {
				return err
			}

			drv, err := kode.New(logger, cfg.Strict)
			if err != nil {
				return err
			}

			t := table.NewWriter()
			t.SetOutputMirror(cmd.OutOrStdout())
			t.SetStyle(table.StyleLight)
			t.AppendHeader(table.Row{"#", "Competence", "Line", "Col", "Total", "Inside"})

			stream := drv.Lexer().Tokenize(text, cfg.Strict)
			count := 0
			for {
				tok, err := stream.Next()
				if err != nil {
					return err
				}
				if tok == nil {
					break
				}
				count++
				inside := ""
				if tok.Extracted() {
					inside = tok.Inside
				}
				t.AppendRow(table.Row{count, tok.Comp.Identifier, tok.Pos.Line, tok.Pos.Column, tok.Total(), inside})
			}
			t.Render()
			return nil
		},
	}
	return cmd
}
