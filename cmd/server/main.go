package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

//	@title			Marketplace API
//	@version		1.0
//	@description	Freelance marketplace: users, projects, modules, proposals, smart contract terms, milestones and messages.

//	@BasePath	/api

var version = "dev"

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:           "marketplace",
	Short:         "Freelance marketplace API server",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("marketplace %s\n", version)
	},
}
