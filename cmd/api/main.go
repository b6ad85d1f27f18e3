// @title           Productivity API
// @version         1.0
// @description     Owner-scoped CRUD for personal productivity resources.
// @BasePath        /api
package main

import (
	"context"
	"fmt"
	"os"

	"productivity/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
