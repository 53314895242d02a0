package main

import (
	"github.com/firefly-engine/firefly/cli"
	"github.com/firefly-engine/firefly/logger"
)

func main() {
	logger.Init()
	cli.Execute()
}
