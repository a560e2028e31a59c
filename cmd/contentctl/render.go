package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/portfolio-website/portfolio-server/internal/markdown"
)

func renderCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "render [file]",
		Short: "Render Markdown to sanitized HTML",
		Long:  "Render a Markdown file, or stdin when no file is given, exactly as a project page would.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var in io.Reader = cmd.InOrStdin()
			if len(args) == 1 {
				f, err := os.Open(args[0])
				if err != nil {
					return fmt.Errorf("open %s: %w", args[0], err)
				}
				defer f.Close()
				in = f
			}

			src, err := io.ReadAll(in)
			if err != nil {
				return fmt.Errorf("read input: %w", err)
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), markdown.NewRenderer().Render(string(src)))
			return err
		},
	}
}
