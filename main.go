package main

import (
	"github.com/danfragoso/deskamp/cmd"
	"github.com/danfragoso/deskamp/internal/logger"
)

func main() {
	defer logger.Sync()
	cmd.Execute()
}
