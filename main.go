package main

import "github.com/sangamparmar/MovieFrenz/cmd"

var (
	version = "dev"
	commit  = "none"
)

func main() {
	cmd.Execute(version, commit)
}
