package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/1broseidon/snapwm/internal/config"
	"github.com/1broseidon/snapwm/internal/tui"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect, validate and edit the configuration file",
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the default configuration path",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := config.DefaultConfigPath()
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), path)
		return nil
	},
}

var configValidateCmd = &cobra.Command{
	Use:   "validate [file]",
	Short: "Check a configuration file and report every problem",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := configArg(args)
		if err != nil {
			return err
		}
		if _, err := os.Stat(path); err != nil {
			return fmt.Errorf("cannot read %s: %w", path, err)
		}
		if _, err := config.LoadFromPath(path); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s is valid\n", path)
		return nil
	},
}

var configDefaultCmd = &cobra.Command{
	Use:   "default",
	Short: "Print the default configuration, or write it with --write",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		write, _ := cmd.Flags().GetBool("write")
		if !write {
			return config.WriteDefault(cmd.OutOrStdout())
		}
		path, err := config.DefaultConfigPath()
		if err != nil {
			return err
		}
		if force, _ := cmd.Flags().GetBool("force"); !force {
			if _, err := os.Stat(path); err == nil {
				return fmt.Errorf("%s already exists (use --force to replace it)", path)
			}
		}
		if err := config.Save(path, config.DefaultConfig()); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
		return nil
	},
}

var configEditCmd = &cobra.Command{
	Use:   "edit [file]",
	Short: "Edit common settings interactively and reload snapwm",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := configArg(args)
		if err != nil {
			return err
		}
		return tui.New(path, newClient()).Run()
	},
}

func init() {
	configDefaultCmd.Flags().Bool("write", false, "Write the defaults to the configuration path")
	configDefaultCmd.Flags().Bool("force", false, "Replace an existing file when writing")
	configCmd.AddCommand(configPathCmd, configValidateCmd, configDefaultCmd, configEditCmd)
	rootCmd.AddCommand(configCmd)
}

func configArg(args []string) (string, error) {
	if len(args) == 1 {
		return args[0], nil
	}
	return config.DefaultConfigPath()
}
