package main

import "github.com/bjaspel63/splitClass/cmd/splitclass/cmd"

func main() {
	cmd.Execute()
}
