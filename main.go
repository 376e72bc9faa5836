package main

import "github.com/pagelens/pagelens/cmd"

func main() {
	cmd.Execute()
}
