package main

import (
	"os"

	"github.com/pushpak1497/swift/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
