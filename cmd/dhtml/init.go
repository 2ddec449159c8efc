package main

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/arkenidar/dhtml/internal/config"
)

func initCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default dhtml.json",
		Long: `Write a dhtml.json with default settings to the working
directory. Edit it to resize the demos or change the server address,
then run "dhtml serve".`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(force)
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing dhtml.json")

	return cmd
}

func runInit(force bool) error {
	wd, err := os.Getwd()
	if err != nil {
		return err
	}
	path := filepath.Join(wd, config.ConfigFileName)

	if !force {
		if _, err := os.Stat(path); err == nil {
			errorMsg("%s already exists (use --force to overwrite)", config.ConfigFileName)
			return os.ErrExist
		}
	}

	cfg := config.New()
	if err := cfg.SaveTo(path); err != nil {
		return err
	}

	success("Wrote %s", config.ConfigFileName)
	info("Run \"dhtml serve\" to start the demo server")
	return nil
}
