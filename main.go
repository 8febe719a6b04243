package main

import "github.com/im45145v/bipulse/cmd"

func main() {
	cmd.Execute()
}
