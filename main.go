package main

import "ee-export/cmd"

func main() {
	cmd.Execute()
}
