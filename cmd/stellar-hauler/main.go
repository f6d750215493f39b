package main

import "github.com/andrescamacho/stellar-hauler/internal/adapters/cli"

func main() {
	cli.Execute()
}
