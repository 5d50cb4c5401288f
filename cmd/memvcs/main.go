// Copyright © 2018 One Concern

package main

import (
	"github.com/oneconcern/memvcs/cmd/memvcs/cmd"
)

func main() {
	cmd.Execute()
}
