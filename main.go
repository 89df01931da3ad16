/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package main

import (
	"github.com/josephgoksu/taskvoice/cmd"
	"github.com/josephgoksu/taskvoice/internal/logger"
)

func main() {
	defer logger.HandlePanic()
	cmd.Execute()
}
