package main

import (
	"os"

	"github.com/atlassify/atlassify/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
