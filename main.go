package main

import "github.com/tkarvinen/pdbfetch/cmd"

// execute is a seam for testing main without parsing real arguments.
var execute = cmd.Execute

func main() {
	execute()
}
