package main

import "github.com/modulegraph/jsgraph/cmd/jsgraph"

func main() {
	cmd.Execute()
}
