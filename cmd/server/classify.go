package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"fieldwatch/pkg/analysis"
)

func classifyCommand() *cobra.Command {
	var maxSide int
	var timeout time.Duration
	cmd := &cobra.Command{
		Use:   "classify [image]",
		Short: "Run the colour coverage classifier on a local image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()
			buf, format, err := analysis.Decode(ctx, f, maxSide)
			if err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}
			res, err := analysis.Classify(buf)
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(struct {
				File   string          `json:"file"`
				Format string          `json:"format"`
				Result analysis.Result `json:"result"`
			}{args[0], format, res})
		},
	}
	cmd.Flags().IntVar(&maxSide, "max-side", analysis.DefaultMaxSide, "downscale so the longer side fits")
	cmd.Flags().DurationVar(&timeout, "timeout", 10*time.Second, "decode deadline")
	return cmd
}
