package main

import "timebank/timebank-cli/cmd"

func main() {
	cmd.Execute()
}
