// Command contentctl previews project content outside the web server: it
// renders Markdown through the same pipeline as the site and reads the
// project collection.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "contentctl",
		Short:         "Inspect portfolio content",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(renderCmd(), projectsCmd())
	return cmd
}
