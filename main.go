package main

import (
	"os"

	"github.com/PirateLibrary/PirateLibrary/app"
)

func main() {
	err := app.Execute()
	if err != nil {
		os.Exit(1)
	}
}
