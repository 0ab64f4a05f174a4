package main

import (
	"os"

	mainlib "github.com/warptools/buildorder/cmd/buildorder/lib"
)

func main() {
	os.Exit(mainlib.Main(os.Args, os.Stdin, os.Stdout, os.Stderr))
}
