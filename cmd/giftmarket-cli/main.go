package main

import "giftmarket-backend/cmd/giftmarket-cli/commands"

func main() {
	commands.Execute()
}
