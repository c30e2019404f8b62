package main

import (
	"github.com/mutualnet/mutualpool/cmd/mutualpool/cmd"
)

func main() {
	cmd.Execute()
}
