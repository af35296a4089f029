package main

import "github.com/joshkornreich/secular-extract/cmd"

func main() {
	cmd.Execute()
}
