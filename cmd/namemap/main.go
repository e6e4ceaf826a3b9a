package main

import "github.com/amterp/namemap/internal/cli"

func main() {
	cli.Run()
}
