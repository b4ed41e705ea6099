package main

import (
	"github.com/NVIDIA/asset-discovery/pkg/cli"
)

func main() {
	cli.Execute()
}
