package main

import "github.com/1kharvey/k-e220/cmd/k-e220/cmd"

var version string // set by the compiler

func main() {
	cmd.Execute(version)
}
