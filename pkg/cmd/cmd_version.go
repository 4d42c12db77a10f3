package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// set at build time
var (
	version = "dev"
	commit  = "unknown"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("canbot %s (%s)\n", version, commit)
		},
	}
}
