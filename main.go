package main

import (
	"os"

	"github.com/akarpov/jobtrack/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
