package migrate

import (
	"context"
	"flag"
	"log"
	"strings"

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
	return `Apply or roll back the database schema: migrate [up|down]. Default is up.`
}

func (c *Cmd) Run(args []string) int {
	err := c.flags.Parse(args)
	if err != nil {
		log.Printf("error parsing arguments: %s", err)
		return ExitErr
	}

	direction := extd.DirectionUp
	if rest := c.flags.Args(); len(rest) > 0 {
		direction = strings.ToLower(strings.TrimSpace(rest[0]))
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

	err = extd.RunMigration(ctx, cfg, direction)
	if err != nil {
		ylog.Error(ctx, "migration: failed", ylog.KV("error", err))
		return ExitErr
	}

	ylog.Info(ctx, "migration: done", ylog.KV("direction", direction))
	return ExitSuccess
}

func (c *Cmd) Synopsis() string {
	return `Apply or roll back the database schema`
}
