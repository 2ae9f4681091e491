package main

import "github.com/inovacc/clipd/cmd"

func main() {
	cmd.Execute()
}
