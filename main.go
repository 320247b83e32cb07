package main

import (
	"log"
	"os"

	"github.com/mitchellh/cli"
	"github.com/mustyfdn/app-portal/cmd/migrate"
	"github.com/mustyfdn/app-portal/cmd/server"

	_ "github.com/lib/pq"
)

func main() {
	const appName, appVersion = "app-portal", "1.0.0"

	serverCmd := server.NewCmd()

	c := cli.NewCLI(appName, appVersion)
	c.Args = os.Args[1:]
	c.Autocomplete = true
	c.Commands = map[string]cli.CommandFactory{
		"":        serverCmd, // default command if no subcommand defined
		"server":  serverCmd,
		"migrate": migrate.NewCmd(),
	}

	exitStatus, err := c.Run()
	if err != nil {
		log.Println(err)
	}

	os.Exit(exitStatus)
}
