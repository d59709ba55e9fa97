// Command sweetshop runs and administers the sweet shop service.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "sweetshop",
	Short: "Sweet shop inventory service",
	Long:  "Backend service for the sweet shop: catalogue, stock, purchases and the admin CLI.",
}

func init() {
	// Server
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(routeListCmd)

	// Database
	rootCmd.AddCommand(seedCmd)

	// Users
	rootCmd.AddCommand(promoteCmd)
}
