package main

import "github.com/jcdickinson/doclinks/cmd"

func main() {
	cmd.Execute()
}
