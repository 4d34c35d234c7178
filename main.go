package main

import "github.com/polyscan/polyscan/cmd"

func main() {
	cmd.Execute()
}
