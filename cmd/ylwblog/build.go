package main

import (
	"github.com/spf13/cobra"

	"ylwblog/internal/build"
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Load every post once and write the data files",
	RunE:  runBuild,
}

func init() {
	rootCmd.AddCommand(buildCmd)
}

func runBuild(cmd *cobra.Command, _ []string) error {
	cfg, logger, err := setup()
	if err != nil {
		return err
	}
	b := &build.Builder{Cfg: cfg, Logger: logger}
	_, err = b.Run(cmd.Context())
	return err
}
