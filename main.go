package main

import "github.com/nathanhack/sysldpc/cmd"

func main() {
	cmd.Execute()
}
