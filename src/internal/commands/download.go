package commands

import (
	"context"
	"time"

	"github.com/spf13/pflag"

	"github.com/mergehosts/mergehosts/src/internal/config"
	"github.com/mergehosts/mergehosts/src/internal/lists"
)

func CreateDownloadCommand() *DownloadCommand {
	return &DownloadCommand{
		name: "download",
		fs:   pflag.NewFlagSet("download", pflag.ContinueOnError),
	}
}

// DownloadCommand fetches external.url into the lists directory.
type DownloadCommand struct {
	name string
	fs   *pflag.FlagSet
	ctx  *AppContext
	cfg  *config.Config

	timeout time.Duration
}

func (g *DownloadCommand) Name() string {
	return g.name
}

func (g *DownloadCommand) Init(args []string, ctx *AppContext) error {
	g.ctx = ctx
	g.fs.DurationVar(&g.timeout, "timeout", time.Minute, "Download timeout")

	if err := g.fs.Parse(args); err != nil {
		return err
	}

	// The list may not exist yet, so the sources are not validated here.
	if cfg, err := loadConfigOrFail(ctx); err != nil {
		return err
	} else {
		g.cfg = cfg
	}

	return nil
}

func (g *DownloadCommand) Run() error {
	ctx, cancel := context.WithTimeout(context.Background(), g.timeout)
	defer cancel()

	d := &lists.Downloader{Logger: g.ctx.logger()}
	_, err := d.DownloadExternal(ctx, g.cfg)
	return err
}
