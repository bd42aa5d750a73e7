// cmd/vepanno/main.go
package main

import (
	"vepanno/internal/app"
	"vepanno/internal/appshell"
)

func main() { appshell.Main(app.RunContext) }
