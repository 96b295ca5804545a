package main

import (
	"os"

	"github.com/thenoetrevino/scope/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
