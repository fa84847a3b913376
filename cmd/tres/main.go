package main

import "github.com/KimNorgaard/go-tres/internal/cli"

func main() {
	cli.Start()
}
