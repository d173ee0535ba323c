package main

import (
	"errors"
	"fmt"
	"strings"

	"realty/internal/schema"

	"github.com/spf13/cobra"
)

var checkSchemaCmd = &cobra.Command{
	Use:   "check-schema",
	Short: "Verify the model's expected columns against the form fields",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		reg := schema.NewRegistry(cfg.Paths.ColumnsPath, cfg.Paths.ExamplesPath)
		if err := reg.Load(); err != nil {
			return err
		}
		if err := reg.CheckCompatibility(); err != nil {
			var mismatch *schema.MismatchError
			if errors.As(err, &mismatch) {
				fmt.Fprintf(cmd.OutOrStdout(), "missing columns: %s\n", strings.Join(mismatch.Missing, ", "))
			}
			return err
		}
		cols, _ := reg.ExpectedColumns()
		fmt.Fprintf(cmd.OutOrStdout(), "ok: %d expected columns are covered by the form\n", len(cols))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(checkSchemaCmd)
}
