package main

import "github.com/fbarbosa/hr-management/cmd"

func main() {
	cmd.Execute()
}
