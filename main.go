package main

import (
	"os"

	"github.com/scan-io-git/flowscan/cmd"
)

func main() {
	code := cmd.Execute()
	os.Exit(code)
}
