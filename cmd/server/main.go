package main

import "hrpro/internal/app/cli"

func main() {
	cli.Execute()
}
