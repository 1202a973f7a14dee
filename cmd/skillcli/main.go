package main

import "skillcli/internal/cli"

func main() {
	cli.Execute()
}
