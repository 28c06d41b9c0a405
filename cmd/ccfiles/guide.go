package main

import (
	"fmt"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"ccfiles/docs"
	"ccfiles/internal/theme"
)

func newGuideCmd(opts *bootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "guide",
		Short: "Show the user guide",
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := boot(cmd, opts)
			if err != nil {
				return err
			}
			defer d.closeFn()

			style := "notty"
			switch d.theme.Name {
			case string(theme.ModeDark):
				style = "dark"
			case string(theme.ModeLight):
				style = "light"
			}

			r, err := glamour.NewTermRenderer(
				glamour.WithStandardStyle(style),
				glamour.WithWordWrap(100),
			)
			if err != nil {
				fmt.Fprint(cmd.OutOrStdout(), docs.UserGuide())
				return nil
			}
			out, err := r.Render(docs.UserGuide())
			if err != nil {
				fmt.Fprint(cmd.OutOrStdout(), docs.UserGuide())
				return nil
			}
			fmt.Fprint(cmd.OutOrStdout(), out)
			return nil
		},
	}
}
