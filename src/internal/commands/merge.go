package commands

import (
	"io"

	"github.com/spf13/pflag"

	"github.com/mergehosts/mergehosts/src/internal/config"
	"github.com/mergehosts/mergehosts/src/internal/hosts"
)

func CreateMergeCommand() *MergeCommand {
	return &MergeCommand{
		name: "merge",
		fs:   pflag.NewFlagSet("merge", pflag.ContinueOnError),
	}
}

// MergeCommand merges the sources into the destination file.
type MergeCommand struct {
	name string
	fs   *pflag.FlagSet
	ctx  *AppContext
	cfg  *config.Config

	force bool
}

func (g *MergeCommand) Name() string {
	return g.name
}

func (g *MergeCommand) Init(args []string, ctx *AppContext) error {
	g.ctx = ctx
	g.fs.BoolVarP(&g.force, "force", "f", false, "Write the destination even if only the header changed")

	if err := g.fs.Parse(args); err != nil {
		return err
	}

	if cfg, err := loadAndValidateConfigOrFail(ctx); err != nil {
		return err
	} else {
		g.cfg = cfg
	}

	return nil
}

func (g *MergeCommand) Run() error {
	logger := g.ctx.logger()
	renderer := newMergeRenderer(g.cfg, logger)
	dest := g.cfg.GetAbsDestination()

	published, err := hosts.Publish(dest, hosts.PublishOptions{
		SkipUnchanged: g.cfg.General.SkipUnchanged && !g.force,
		Logger:        logger,
	}, func(w io.Writer) error {
		_, err := renderer.Render(w)
		return err
	})
	if err != nil {
		return err
	}

	if published {
		logger.Infof("Hosts file written to %s", dest)
	}
	return nil
}
