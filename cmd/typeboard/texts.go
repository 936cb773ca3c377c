package main

import (
	"context"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/verte-zerg/typeboard/internal/stats"
)

const defaultTextsLast = 20

var textsLast int

func newTextsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "texts",
		Short: "List stored reference texts",
		Args:  cobra.NoArgs,
		RunE:  runTextsCmd,
	}
	cmd.Flags().IntVar(&textsLast, "last", defaultTextsLast, "number of most recent texts (0 = all)")
	return cmd
}

func runTextsCmd(cmd *cobra.Command, _ []string) error {
	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	ctx := context.Background()
	if cmd.Context() != nil {
		ctx = cmd.Context()
	}
	repo, err := openRepository(ctx, s.store)
	if err != nil {
		return err
	}
	defer closeRepository(repo)

	report, err := stats.BuildTextsReport(ctx, repo, textsLast)
	if err != nil {
		return err
	}
	return stats.RenderTexts(cmd.OutOrStdout(), report, terminalWidth(), time.Local)
}

// terminalWidth returns the stdout width, or 0 when stdout is not a terminal.
func terminalWidth() int {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return 0
	}
	width, _, err := term.GetSize(fd)
	if err != nil {
		return 0
	}
	return width
}
