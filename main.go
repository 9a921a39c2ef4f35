package main

import (
	"fmt"
	"os"

	"fjacquet/fintrack/cmd/accounts"
	"fjacquet/fintrack/cmd/categories"
	"fjacquet/fintrack/cmd/export"
	"fjacquet/fintrack/cmd/parse"
	"fjacquet/fintrack/cmd/root"
	"fjacquet/fintrack/cmd/serve"
	"fjacquet/fintrack/cmd/stats"
	"fjacquet/fintrack/cmd/sheetsync"
	"fjacquet/fintrack/internal/config"
)

func init() {
	// 1. Load .env first so LOG_LEVEL and GOOGLE_* reach the config loader
	_, _ = config.LoadEnv()

	// 2. Initialize root command
	root.Init()

	// 3. Add all subcommands
	root.Cmd.AddCommand(parse.Cmd)
	root.Cmd.AddCommand(parse.AllCmd)
	root.Cmd.AddCommand(categories.InitCmd)
	root.Cmd.AddCommand(categories.AddCmd)
	root.Cmd.AddCommand(categories.ListCmd)
	root.Cmd.AddCommand(categories.RecategorizeCmd)
	root.Cmd.AddCommand(accounts.Cmd)
	root.Cmd.AddCommand(accounts.RenameCmd)
	root.Cmd.AddCommand(stats.Cmd)
	root.Cmd.AddCommand(export.Cmd)
	root.Cmd.AddCommand(sheetsync.Cmd)
	root.Cmd.AddCommand(serve.Cmd)
}

func main() {
	if err := root.Cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
