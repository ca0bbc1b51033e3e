package main

import "github.com/Gautamrajanand/clipforge/internal/cli"

func main() {
	cli.Main()
}
