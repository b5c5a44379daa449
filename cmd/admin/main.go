package main

import (
	"context"
	"fmt"
	"os"

	"github.com/dmitrijs2005/tasktracker/internal/admin"
)

func main() {
	if err := admin.NewRootCommand().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "taskadmin:", err)
		os.Exit(1)
	}
}
