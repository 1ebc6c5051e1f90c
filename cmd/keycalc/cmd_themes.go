package main

import (
	"fmt"

	"keycalc/internal/config"

	"github.com/spf13/cobra"
)

// themesCmd lists the available themes.
var themesCmd = &cobra.Command{
	Use:   "themes",
	Short: "List color themes and mark the current one",
	RunE:  runThemes,
}

func runThemes(cmd *cobra.Command, args []string) error {
	ws, cfg, err := loadEnvironment()
	if err != nil {
		return err
	}
	current := cfg.UI.DefaultTheme
	if pm, err := openPreferences(ws, cfg); err == nil {
		current = pm.Theme()
	}

	for _, name := range config.ValidThemes {
		marker := " "
		if name == current {
			marker = "*"
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", marker, name)
	}
	return nil
}
