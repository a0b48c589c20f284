package main

import "report-automation-be/internal/cli"

func main() {
	cli.Execute()
}
