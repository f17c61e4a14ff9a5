package main

import "artifact-host/cmd"

func main() {
	cmd.Execute()
}
