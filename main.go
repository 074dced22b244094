package main

import "github.com/agentic-research/requirekit/cmd"

func main() {
	cmd.Execute()
}
