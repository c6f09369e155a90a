// nest TUI - split expenses from your terminal.
//
// Copyright (c) 2025 Nest App
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nestapp/nest-tui/internal/cli"
	"github.com/nestapp/nest-tui/internal/ui/app"
	"github.com/nestapp/nest-tui/internal/ui/screens"
	"github.com/nestapp/nest-tui/internal/ui/styles"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func init() {
	cli.Version = Version
	cli.GitCommit = GitCommit
	cli.BuildDate = BuildDate
}

func main() {
	cmd, args := cli.Parse()

	var err error
	switch cmd {
	case cli.CmdTUI:
		err = runTUI(args)
	case cli.CmdLogin:
		err = cli.HandleLogin(args)
	case cli.CmdLogout:
		err = cli.HandleLogout(args)
	case cli.CmdStatus:
		err = cli.HandleStatus(args)
	case cli.CmdExpenses:
		err = cli.HandleExpenses(args)
	case cli.CmdVersion:
		cli.PrintVersion()
	case cli.CmdHelp:
		cli.PrintUsage()
	}

	if err != nil {
		fmt.Fprintln(os.Stderr, styles.RenderError(err.Error()))
		os.Exit(1)
	}
}

// runTUI assembles the stack and runs the Bubble Tea program.
func runTUI(args cli.Args) error {
	stack, err := cli.BuildStack(args)
	if err != nil {
		return err
	}

	deps := screens.Deps{
		Theme:   styles.NewTheme(),
		Session: stack.Session,
		Flows:   stack.Flows,
		REST:    stack.REST,
		GQL:     stack.GQL,
		Config:  stack.Config,
	}

	var opts []tea.ProgramOption
	if stack.Config.UI.AltScreen {
		opts = append(opts, tea.WithAltScreen())
	}

	if _, err := tea.NewProgram(app.New(deps), opts...).Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}
