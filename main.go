package main

import (
	"os"

	"github.com/Hitargot/Qooa-Frontend/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
