package main

import "clusterview/cmd/client/cmd"

func main() {
	cmd.Execute()
}
