package main

import "gastos/cmd/client/cmd"

func main() {
	cmd.Execute()
}
