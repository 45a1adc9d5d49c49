package main

import (
	"os"

	"github.com/hashicorp/go-hclog"
	"github.com/mitchellh/cli"

	"github.com/42on/ceph-fact/command"
	"github.com/42on/ceph-fact/version"
)

func main() {
	os.Exit(realMain(os.Args[1:]))
}

func realMain(args []string) int {
	ui := &cli.BasicUi{
		Reader:      os.Stdin,
		Writer:      os.Stdout,
		ErrorWriter: os.Stderr,
	}

	c := cli.NewCLI("ceph-fact", version.GetVersion().SemanticVersion())
	c.Args = args
	c.Commands = map[string]cli.CommandFactory{
		"run":     command.RunCommandFactory(ui),
		"version": command.VersionCommandFactory(ui),
	}

	rc, err := c.Run()
	if err != nil {
		hclog.L().Error("error running command", "error", err)
	}
	return rc
}
