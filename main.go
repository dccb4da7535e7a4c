package main

import "github.com/pders01/skuref/cmd"

func main() {
	cmd.Execute()
}
