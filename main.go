package main

import "openf1telemetry/cmd"

func main() {
	cmd.Execute()
}
