package main

import "github.com/LegacyCodeHQ/vfsgraph/cmd"

func main() {
	cmd.Execute()
}
