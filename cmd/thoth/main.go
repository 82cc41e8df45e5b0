package main

import "thoth/cmd/thoth/root"

func main() {
	root.Execute()
}
