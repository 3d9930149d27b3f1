package main

import (
	"fmt"
	"os"

	"github.com/arthur-debert/dirsync/pkg/errors"
)

// userMessages maps well-known failure codes to a one-line explanation; every
// other error is printed as-is.
var userMessages = map[errors.ErrorCode]string{
	errors.ErrConfigLoad:      "could not load the configuration",
	errors.ErrConfigInvalid:   "the configuration is invalid",
	errors.ErrLogfileInRepo:   "the logfile may not live inside a synced directory",
	errors.ErrDestNotEmpty:    "the destination directory must be empty",
	errors.ErrInvalidLocation: "a synced location could not be resolved",
}

func main() {
	rootCmd := NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		if msg, ok := userMessages[errors.GetErrorCode(err)]; ok {
			fmt.Fprintf(os.Stderr, "dirsync: %s: %v\n", msg, err)
		} else {
			fmt.Fprintf(os.Stderr, "dirsync: %v\n", err)
		}
		os.Exit(1)
	}
}
