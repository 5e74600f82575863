package main

import (
	"context"
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/1broseidon/snapwm/internal/daemon"
	"github.com/1broseidon/snapwm/internal/ipc"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

var socketPath string

var rootCmd = &cobra.Command{
	Use:           "snapwm",
	Short:         "A stacking X11 window manager with snapping",
	Long:          "snapwm is a stacking window manager for X11. Windows snap to halves, quarters and the full work area of each monitor, and every monitor keeps its own workspaces.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start the window manager on the current display",
	Args:  cobra.NoArgs,
	RunE:  runWM,
}

func init() {
	rootCmd.Version = version
	rootCmd.PersistentFlags().StringVar(&socketPath, "socket", "", "Control socket path (default: $XDG_RUNTIME_DIR/snapwm/snapwm.sock)")
	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
		log.SetOutput(os.Stderr)
	}

	runCmd.Flags().String("config", "", "Configuration file (default: $XDG_CONFIG_HOME/snapwm/config.yaml)")
	runCmd.Flags().String("log-level", "", "Log level: debug, info, warning or error (overrides the configuration)")
	rootCmd.AddCommand(runCmd)
}

func runWM(cmd *cobra.Command, args []string) error {
	configPath, _ := cmd.Flags().GetString("config")
	level, _ := cmd.Flags().GetString("log-level")
	return daemon.Run(context.Background(), daemon.Options{
		ConfigPath: configPath,
		SocketPath: socketPath,
		LogLevel:   level,
		Version:    version,
	})
}

// newClient connects to the running window manager.
func newClient() *ipc.Client {
	if socketPath != "" {
		return ipc.NewClientAt(socketPath)
	}
	return ipc.NewClient()
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
