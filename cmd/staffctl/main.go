package main

import (
	"os"

	"evrental-staff-core/cmd/staffctl/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
