package main

import (
	"github.com/cryolab/af3job/cmd"
)

func main() {
	cmd.Execute() // initialize cobra commands
}
