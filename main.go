package main

import "github.com/glucotrack/glucotrack-api/cmd"

func main() {
	cmd.Execute()
}
