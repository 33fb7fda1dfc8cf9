package main

import "github.com/snadboy/sbnotion/cmd"

func main() {
	cmd.Execute()
}
