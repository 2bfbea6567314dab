package main

import "github.com/mcoot/elotrack/internal/cli"

func main() {
	cli.Execute()
}
