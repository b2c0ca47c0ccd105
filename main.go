package main

import "housing-dashboard/cmd"

func main() {
	cmd.Execute()
}
