package main

import "vscch/internal/cli"

func main() {
	cli.Execute()
}
