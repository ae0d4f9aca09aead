package main

import "github.com/dmitryhil/vineweb/cmd/catalogctl/commands"

func main() {
	commands.Execute()
}
