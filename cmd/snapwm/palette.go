package main

import (
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/1broseidon/snapwm/internal/config"
	"github.com/1broseidon/snapwm/internal/palette"
)

var paletteCmd = &cobra.Command{
	Use:   "palette",
	Short: "Pick an action from a rofi or dmenu menu",
	Long: "Show the actions of the running window manager in rofi or dmenu and run the selected one.\n\n" +
		"The launcher comes from --backend, then palette_backend in the configuration file, then the first one found in PATH.",
	Args: cobra.NoArgs,
	RunE: runPalette,
}

func init() {
	paletteCmd.Flags().String("backend", "", "Launcher to use: auto, rofi or dmenu")
	paletteCmd.Flags().String("config", "", "Configuration file (default: $XDG_CONFIG_HOME/snapwm/config.yaml)")
	rootCmd.AddCommand(paletteCmd)
}

func runPalette(cmd *cobra.Command, args []string) error {
	name, _ := cmd.Flags().GetString("backend")
	if name == "" {
		path, _ := cmd.Flags().GetString("config")
		var cfg *config.Config
		var err error
		if path == "" {
			cfg, err = config.Load()
		} else {
			cfg, err = config.LoadFromPath(path)
		}
		if err != nil {
			return err
		}
		name = cfg.PaletteBackend
	}

	backend, err := palette.NewBackend(name)
	if err != nil {
		return err
	}
	action, err := palette.Run(backend, newClient())
	if palette.IsCancelled(err) {
		return nil
	}
	if err != nil {
		return err
	}
	log.WithField("action", action).Debug("Palette action done")
	return nil
}
