package main

import "season-service/internal/cli"

func main() {
	cli.Execute()
}
