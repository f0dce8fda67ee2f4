package main

import "github.com/slaffcheff/ec2ssh/cmd"

func main() {
	cmd.Execute()
}
