package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
)

// version is overridden at link time with -X.
var version = "dev"

func newRootCmd(base Config) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           appName,
		Short:         "Build catppuccin GTK themes from the Colloid templates",
		Long:          "ctpgtk compiles the Colloid GTK/GNOME Shell/Cinnamon/xfwm4 templates with catppuccin palettes, recolors their assets and packages the result as theme directories or zip archives.",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// build
	rootCmd.AddCommand(newBuildCmd(base))
	// list
	rootCmd.AddCommand(newListCmd(base))
	// browse
	rootCmd.AddCommand(newBrowseCmd(base))
	// install
	rootCmd.AddCommand(newInstallCmd(base))
	// clean
	rootCmd.AddCommand(newCleanCmd())
	// doctor
	rootCmd.AddCommand(newDoctorCmd(base))
	// config
	rootCmd.AddCommand(newConfigCmd())
	// help (agent-friendly)
	rootCmd.SetHelpCommand(newHelpCmd())
	return rootCmd
}

// Run executes the CLI and returns a process exit code.
func Run() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	rootCmd := newRootCmd(loadConfig())
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", appName, err)
		return 1
	}
	return 0
}
