package main

import "github.com/shapestone/shape-x12/internal/cli"

func main() {
	cli.Execute()
}
