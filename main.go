package main

import "github.com/kasuboski/showfinder/cmd"

func main() {
	cmd.Execute()
}
