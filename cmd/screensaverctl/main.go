package main

import (
	"os"
	_ "time/tzdata"

	"github.com/smartscreen/backend/cmd/screensaverctl/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
