package main

import (
	"github.com/go-arrower/relationship/cmd"
)

func main() {
	cmd.Execute()
}
