package main

import (
	"encoding/json"
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"ccfiles/internal/browse"
	"ccfiles/internal/scan"
)

func newScanCmd(opts *bootOptions) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "scan [root...]",
		Short: "Scan for configuration files and print them",
		Long: `Scan runs the same discovery pipeline as the browser and prints the
records to stdout, for scripting or a quick look.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := boot(cmd, opts)
			if err != nil {
				return err
			}
			defer d.closeFn()

			roots, err := resolveRoots(args, opts.recursive)
			if err != nil {
				return err
			}
			scanner, err := scan.New(scan.Options{
				IncludeHidden: d.cfg.IncludeHidden,
				Exclude:       d.cfg.Exclude,
			}, d.log)
			if err != nil {
				return err
			}

			batch, scanErr := scanner.Scan(cmd.Context(), roots)
			if scanErr != nil && len(batch.Records) == 0 {
				return scanErr
			}

			switch format {
			case "json":
				if err := printJSON(cmd, batch); err != nil {
					return err
				}
			case "text":
				printText(cmd, batch)
			default:
				return fmt.Errorf("unknown format %q (want text or json)", format)
			}

			if scanErr != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), "Warning:", scanErr)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "text", "output format: text or json")
	return cmd
}

func printText(cmd *cobra.Command, batch scan.Batch) {
	out := cmd.OutOrStdout()
	for _, g := range browse.BuildGroups(batch.Records, nil) {
		fmt.Fprintf(out, "%s (%d)\n", g.Classification.Label(), len(g.Records))
		for _, rec := range g.Records {
			fmt.Fprintf(out, "  %-28s %9s  %s\n",
				rec.DisplayName(), humanize.IBytes(uint64(rec.SizeBytes)), rec.Path)
		}
		fmt.Fprintln(out)
	}
	fmt.Fprintf(out, "%d file(s)", len(batch.Records))
	if len(batch.Warnings) > 0 {
		fmt.Fprintf(out, ", %d warning(s)", len(batch.Warnings))
	}
	fmt.Fprintln(out)
	for _, w := range batch.Warnings {
		fmt.Fprintln(cmd.ErrOrStderr(), "warning:", w)
	}
}

func printJSON(cmd *cobra.Command, batch scan.Batch) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(struct {
		Records  []scan.Record `json:"records"`
		Warnings []string      `json:"warnings,omitempty"`
	}{batch.Records, batch.Warnings})
}
