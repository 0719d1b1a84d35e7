package main

import "github.com/forPelevin/projroot/internal/cli"

func main() {
	cli.Main()
}
