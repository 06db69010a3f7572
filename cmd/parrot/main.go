package main

import "github.com/tessro/parrot/internal/cli"

func main() {
	cli.Execute()
}
