package main

import "os"

func main() {
	if err := rootCmd.Execute(); err != nil {
		setupLogger(debug).Error("command failed", "error", err)
		os.Exit(1)
	}
}
