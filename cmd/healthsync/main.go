package main

import "github.com/Tiliavir/healthsync/cmd"

func main() {
	cmd.Execute()
}
