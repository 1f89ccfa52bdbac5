// @title           Dispatch API
// @version         1.0
// @description     Dispatch admin backend: indents, loading point, loading complete and gate pass over the dispatch spreadsheet.

// @BasePath  /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

// @schemes http https
package main

import (
	"os"

	"dispatch/cmd"
	_ "dispatch/docs"
)

func main() {
	if err := cmd.NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
