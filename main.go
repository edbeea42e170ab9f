package main

import "precis/cmd"

func main() {
	cmd.Execute()
}
