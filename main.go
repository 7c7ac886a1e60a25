package main

import "github.com/strrl/docsense/internal/cmd"

func main() {
	cmd.Execute()
}
