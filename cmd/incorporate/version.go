package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/incorporate"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of incorporate",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("incorporate version %s\n", strings.TrimSpace(incorporate.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
