package main

import "github.com/relscope/relscope/cmd"

func main() {
	cmd.Run()
}
