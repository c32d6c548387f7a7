package main

import (
	"github.com/spf13/cobra"

	"emberfield/window"
)

var windowCmd = &cobra.Command{
	Use:   "window",
	Short: "Open the particle field in a desktop window",
	Long: `Opens a resizable window. Move the mouse to attract particles.
F1 toggles the debug HUD; Esc closes the window.`,
	Args: cobra.NoArgs,
	RunE: runWindow,
}

func runWindow(cmd *cobra.Command, args []string) error {
	logger.Info("opening window")
	return window.Run(cfg, fieldOptions())
}
