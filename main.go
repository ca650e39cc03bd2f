package main

import "dungeonbot/cmd"

func main() {
	cmd.Execute()
}
