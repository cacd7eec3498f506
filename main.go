package main

import "github.com/costmo/validpoint/cmd"

func main() {
	cmd.Execute()
}
