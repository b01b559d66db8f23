package main

import (
	"os"

	"github.com/git-pkgs/outdated/internal/cli"
)

func main() {
	os.Exit(cli.Execute(os.Args[1:]))
}
