package main

import "github.com/aalvaropc/vexmason/internal/cli"

func main() {
	cli.Execute()
}
