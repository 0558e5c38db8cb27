package main

import "github.com/k1LoW/trendicon/cmd"

func main() {
	cmd.Execute()
}
