package main

import "github.com/goliatone/go-symbol/internal/cli"

func main() {
	cli.Execute()
}
