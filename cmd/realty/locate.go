package main

import (
	"errors"
	"fmt"

	"realty/internal/repository"

	"github.com/spf13/cobra"
)

var locateCmd = &cobra.Command{
	Use:   "locate <file>",
	Short: "Resolve a dataset file name against the export directories",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		loc := repository.NewLocator(cfg.Paths.ExportDirs, cfg.Paths.DatasetDir, nil)
		path, err := loc.Locate(args[0])
		if err != nil {
			var nf *repository.NotFoundError
			if errors.As(err, &nf) {
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "%s not found; tried:\n", nf.Name)
				for _, c := range nf.Candidates {
					fmt.Fprintf(out, "  %s\n", c)
				}
			}
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), path)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(locateCmd)
}
