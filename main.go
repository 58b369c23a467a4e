package main

import "github.com/astroflux/gomhd/cmd"

func main() {
	cmd.Execute()
}
