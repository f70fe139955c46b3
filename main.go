package main

import "github.com/kellyworkos00-droid/fairm/cmd"

func main() {
	cmd.Execute()
}
