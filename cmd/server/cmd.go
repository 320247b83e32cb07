package server

import (
	"context"
	"flag"
	"log"

	"github.com/joho/godotenv"
	"github.com/mitchellh/cli"
	"github.com/mustyfdn/app-portal/container"
	"github.com/mustyfdn/app-portal/extd"
	"github.com/yusufsyaifudin/ylog"
)

const (
	ExitSuccess = 0
	ExitErr     = -1
)

type Cmd struct {
	flags   *flag.FlagSet
	envFile string
}

func NewCmd() func() (cli.Command, error) {
	return func() (cli.Command, error) {
		cmd := &Cmd{}
		err := cmd.init()
		return cmd, err
	}
}

var _ cli.Command = (*Cmd)(nil)
var _ cli.CommandFactory = NewCmd()

func (c *Cmd) init() error {
	c.flags = flag.NewFlagSet("", flag.ContinueOnError)
	c.flags.StringVar(&c.envFile, "env-file", "",
		"Optional env file to load before reading the environment")
	return nil
}

func (c *Cmd) Help() string {
	return `Start the portal HTTP server. Configuration comes from environment variables, see .env.example.`
}

func (c *Cmd) Run(args []string) int {
	err := c.flags.Parse(args)
	if err != nil {
		log.Printf("error parsing arguments: %s", err)
		return ExitErr
	}

	if c.envFile != "" {
		if _err := godotenv.Load(c.envFile); _err != nil {
			log.Printf("error load env file %s: %s", c.envFile, _err)
			return ExitErr
		}
	}

	ctx := extd.SetupLog(context.Background())

	cfg, err := container.LoadConfig()
	if err != nil {
		ylog.Error(ctx, "config: failed", ylog.KV("error", err))
		return ExitErr
	}

	err = extd.RunServer(ctx, cfg)
	if err != nil {
		ylog.Error(ctx, "server: exited with error", ylog.KV("error", err))
		return ExitErr
	}

	return ExitSuccess
}

func (c *Cmd) Synopsis() string {
	return `Start the portal HTTP server`
}
