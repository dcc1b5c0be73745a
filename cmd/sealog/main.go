package main

import "github.com/sealog-project/sealog/internal/cli"

func main() {
	cli.Execute()
}
