package app

import (
	"fmt"
	"io"

	catppuccin "github.com/catppuccin/go"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

func adaptive(light, dark catppuccin.Color) lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: light.Hex, Dark: dark.Hex}
}

// newLogger returns a stderr-style logger tinted with the catppuccin palette.
func newLogger(w io.Writer, level string) (*log.Logger, error) {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid --log-level: %w", err)
	}
	logger := log.NewWithOptions(w, log.Options{
		Level:  lvl,
		Prefix: appName,
	})

	light, dark := catppuccin.Latte, catppuccin.Mocha
	styles := log.DefaultStyles()
	styles.Levels[log.DebugLevel] = lipgloss.NewStyle().SetString("DEBU").Bold(true).Foreground(adaptive(light.Overlay1(), dark.Overlay1()))
	styles.Levels[log.InfoLevel] = lipgloss.NewStyle().SetString("INFO").Bold(true).Foreground(adaptive(light.Blue(), dark.Blue()))
	styles.Levels[log.WarnLevel] = lipgloss.NewStyle().SetString("WARN").Bold(true).Foreground(adaptive(light.Yellow(), dark.Yellow()))
	styles.Levels[log.ErrorLevel] = lipgloss.NewStyle().SetString("ERRO").Bold(true).Foreground(adaptive(light.Red(), dark.Red()))
	styles.Key = lipgloss.NewStyle().Foreground(adaptive(light.Mauve(), dark.Mauve()))
	styles.Prefix = lipgloss.NewStyle().Bold(true).Foreground(adaptive(light.Peach(), dark.Peach()))
	logger.SetStyles(styles)
	return logger, nil
}
