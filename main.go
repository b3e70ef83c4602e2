package main

import (
	"os"

	"github.com/koi-garden/koi-garden-api/app"
)

func main() {
	err := app.Execute()
	if err != nil {
		os.Exit(1)
	}
}
