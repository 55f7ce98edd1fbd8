package main

import "github.com/opencrowbar/crowbar-inventory/cmd"

func main() {
	cmd.Execute()
}
