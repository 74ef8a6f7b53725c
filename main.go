package main

import "github.com/embark-app/embark/cmd"

func main() {
	cmd.Execute()
}
