package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/1broseidon/snapwm/internal/wm"
)

var actionCmd = &cobra.Command{
	Use:   "action <name> [argument]",
	Short: "Run an action in the running window manager",
	Long: "Run an action as if its key binding was pressed. Workspace numbers start at 1.\n\nActions: " +
		strings.Join(wm.ActionNames(), ", "),
	Example: "  snapwm action snap_left\n  snapwm action workspace 2\n  snapwm action '$ alacritty'",
	Args:    cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return newClient().RunAction(strings.Join(args, " "))
	},
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show monitors, workspaces and windows",
	Args:  cobra.NoArgs,
	RunE:  runStatus,
}

var reloadCmd = &cobra.Command{
	Use:   "reload",
	Short: "Reload the configuration file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return newClient().Reload()
	},
}

var quitCmd = &cobra.Command{
	Use:   "quit",
	Short: "Stop the window manager",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return newClient().Quit()
	},
}

func init() {
	statusCmd.Flags().Bool("json", false, "Print the raw status as JSON")
	rootCmd.AddCommand(actionCmd, statusCmd, reloadCmd, quitCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	st, err := newClient().GetStatus()
	if err != nil {
		return err
	}
	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(st)
	}
	styled := term.IsTerminal(int(os.Stdout.Fd()))
	fmt.Fprint(cmd.OutOrStdout(), renderStatus(st, styled))
	return nil
}
