package main

import "github.com/tablekit/tablekit/internal/cli"

func main() {
	cli.Execute()
}
