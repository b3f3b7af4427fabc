package main

import "github.com/medar/arviewer/cmd"

func main() {
	cmd.Execute()
}
