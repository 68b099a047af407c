package main

import "github.com/blacktop/go-imgcat/cmd/imgcat/cmd"

func main() {
	cmd.Execute()
}
