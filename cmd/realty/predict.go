package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"realty/internal/model"

	"github.com/spf13/cobra"
)

var predictFields []string

var predictCmd = &cobra.Command{
	Use:   "predict -f key=value [-f key=value ...]",
	Short: "Validate a form submission and print the predicted price",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		fields, err := parseFields(predictFields)
		if err != nil {
			return err
		}
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		result, problems, err := a.Predictions.Predict(cmd.Context(), fields)
		if err != nil {
			return err
		}
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		if len(problems) > 0 {
			if err := enc.Encode(model.PredictResponse{Errors: problems}); err != nil {
				return err
			}
			return fmt.Errorf("%d invalid field(s)", len(problems))
		}
		return enc.Encode(model.PredictResponse{Result: result})
	},
}

// parseFields turns repeated key=value flags into a form submission. The
// last occurrence of a key wins.
func parseFields(pairs []string) (map[string]string, error) {
	fields := make(map[string]string, len(pairs))
	for _, p := range pairs {
		k, v, ok := strings.Cut(p, "=")
		k = strings.TrimSpace(k)
		if !ok || k == "" {
			return nil, fmt.Errorf("invalid field %q, expected key=value", p)
		}
		fields[k] = v
	}
	return fields, nil
}

func init() {
	predictCmd.Flags().StringArrayVarP(&predictFields, "field", "f", nil, "form field as key=value (repeatable)")
	rootCmd.AddCommand(predictCmd)
}
