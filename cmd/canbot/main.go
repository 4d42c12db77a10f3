package main

import (
	"fmt"
	"os"

	"arhat.dev/canbot/pkg/cmd"
)

func main() {
	rootCmd := cmd.NewCanbotCmd()

	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "canbot: %v\n", err)
		os.Exit(1)
	}
}
