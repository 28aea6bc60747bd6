package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"codehunter/internal/config"
	"codehunter/internal/errors"
)

func newInitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Write a default configuration",
		Long:  "Creates .codehunter/config.toml with the default settings under the project root (default: current directory).",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := projectRoot(args)
			if info, err := os.Stat(root); err != nil || !info.IsDir() {
				return errors.Newf(errors.InvalidProjectPath, "project path %s is not a directory", root)
			}

			out := cmd.OutOrStdout()
			if _, err := os.Stat(config.Path(root)); err == nil && !force {
				// Already initialized is success.
				fmt.Fprintln(out, "CodeHunter already initialized.")
				fmt.Fprintf(out, "Configuration at: %s\n", config.Path(root))
				fmt.Fprintln(out, "\nRun 'codehunter init --force' to reinitialize.")
				return nil
			}

			path, err := config.WriteDefault(root, true)
			if err != nil {
				return errors.New(errors.InternalError, "failed to write configuration", err)
			}
			fmt.Fprintf(out, "Configuration written to: %s\n", path)
			fmt.Fprintln(out, "\nNext steps:")
			fmt.Fprintln(out, "  1. Adjust thresholds and exclusions in the file")
			fmt.Fprintln(out, "  2. Run 'codehunter diagnose' to check the project")
			return nil
		},
	}
	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing configuration")
	return cmd
}
