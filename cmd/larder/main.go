// Package main provides the larder CLI: catalog and shopping list
// management against a local SQLite database, plus an HTTP server mode.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitUserError)
	}
}
