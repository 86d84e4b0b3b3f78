// Package main is the entry point for the asmcheck CLI.
package main

import "uscc.dev/pkg/asmcheck/cmd"

func main() {
	cmd.Execute()
}
