package main

import (
	"fmt"
	"os"

	"currencytracker/internal/cli"
)

var version = "1.0.0"

// @title Currency Tracker API
// @version 1.0
// @description Exchange rates of the tracked currencies, refreshed from the CBR daily feed.
// @BasePath /api/v1
func main() {
	if err := cli.Execute(version); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
