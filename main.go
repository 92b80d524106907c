package main

import "github.com/kris-hansen/hwflow/cmd"

func main() {
	cmd.Execute()
}
