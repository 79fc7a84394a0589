package main

import (
	"os"

	"github.com/coala-info/coala/cmd"
)

func main() {
	cmd.Run(os.Args[1:])
}
