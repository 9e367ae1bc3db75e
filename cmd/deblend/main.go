// cmd/deblend/main.go
package main

import (
	"deblend/internal/app"
	"deblend/internal/appshell"
)

func main() {
	appshell.Main(app.RunContext)
}
