package main

import (
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"realty/internal/model"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	renderOut    string
	renderSector string
)

var renderCmd = &cobra.Command{
	Use:   "render --out DIR [--sector S]",
	Short: "Write every analytics chart and the sector word cloud to a directory",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		resp, err := a.Analytics.Build(cmd.Context(), renderSector)
		if err != nil {
			return err
		}
		written, err := writeArtifacts(renderOut, resp)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %d files to %s (sector %q)\n", written, renderOut, resp.SelectedSector)
		return nil
	},
}

// writeArtifacts stores one <key>.html per chart plus wordcloud.png
func writeArtifacts(dir string, resp *model.AnalyticsResponse) (int, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return 0, fmt.Errorf("failed to create output directory: %w", err)
	}

	keys := make([]string, 0, len(resp.Figures))
	for k := range resp.Figures {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	written := 0
	for _, k := range keys {
		art := resp.Figures[k]
		if art.IsPlaceholder() {
			log.Info().Str("chart", k).Str("reason", art.Placeholder).Msg("Chart rendered as placeholder")
		}
		if err := os.WriteFile(filepath.Join(dir, k+".html"), []byte(art.HTML), 0o644); err != nil {
			return written, fmt.Errorf("failed to write %s: %w", k, err)
		}
		written++
	}

	if resp.WordCloud != "" {
		png, err := base64.StdEncoding.DecodeString(resp.WordCloud)
		if err != nil {
			return written, fmt.Errorf("failed to decode word cloud: %w", err)
		}
		if err := os.WriteFile(filepath.Join(dir, "wordcloud.png"), png, 0o644); err != nil {
			return written, fmt.Errorf("failed to write word cloud: %w", err)
		}
		written++
	}
	return written, nil
}

func init() {
	renderCmd.Flags().StringVar(&renderOut, "out", "", "output directory")
	renderCmd.Flags().StringVar(&renderSector, "sector", "", "sector for the word cloud (default: first available)")
	_ = renderCmd.MarkFlagRequired("out")
	rootCmd.AddCommand(renderCmd)
}
