package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"

	"emberfield/terminal"
)

var termCmd = &cobra.Command{
	Use:   "term",
	Short: "Render the particle field in the terminal",
	Long: `Renders the field with one character cell per block of surface pixels.
Move the mouse over the terminal to attract particles. Esc, q or Ctrl-C quits.`,
	Args: cobra.NoArgs,
	RunE: runTerm,
}

func runTerm(cmd *cobra.Command, args []string) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("open terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init terminal: %w", err)
	}
	defer screen.Fini()

	return terminal.Run(ctx, screen, cfg.Terminal, fieldOptions())
}
