package main

import "github.com/twest49/cypress/cmd"

func main() {
	cmd.Execute()
}
