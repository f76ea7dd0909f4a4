package main

import (
	"fmt"
	"os"

	"fjacquet/credit-report/cmd/batch"
	"fjacquet/credit-report/cmd/extract"
	"fjacquet/credit-report/cmd/root"
	"fjacquet/credit-report/cmd/serve"
)

func init() {
	root.Init()

	root.Cmd.AddCommand(extract.Cmd)
	root.Cmd.AddCommand(serve.Cmd)
	root.Cmd.AddCommand(batch.Cmd)
}

func main() {
	err := root.Cmd.Execute()
	// PersistentPostRunE is skipped when a command fails.
	if c := root.GetContainer(); c != nil {
		_ = c.Close()
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
