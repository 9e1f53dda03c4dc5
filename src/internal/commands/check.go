package commands

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/pflag"

	"github.com/mergehosts/mergehosts/src/internal/config"
	"github.com/mergehosts/mergehosts/src/internal/hosts"
)

func CreateCheckCommand() *CheckCommand {
	return &CheckCommand{
		name: "check",
		fs:   pflag.NewFlagSet("check", pflag.ContinueOnError),
	}
}

// CheckCommand validates the configuration and runs a merge without writing it.
type CheckCommand struct {
	name string
	fs   *pflag.FlagSet
	ctx  *AppContext
	cfg  *config.Config

	printConfig bool
}

func (g *CheckCommand) Name() string {
	return g.name
}

func (g *CheckCommand) Init(args []string, ctx *AppContext) error {
	g.ctx = ctx
	// The summary goes to stdout.
	ctx.logger().SetForceStdErr(true)
	g.fs.BoolVar(&g.printConfig, "print-config", false, "Print the effective configuration")

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

func (g *CheckCommand) Run() error {
	out := g.ctx.stdout()

	if g.printConfig {
		buf, err := g.cfg.SerializeConfig()
		if err != nil {
			return fmt.Errorf("failed to serialize config: %w", err)
		}
		if _, err := buf.WriteTo(out); err != nil {
			return err
		}
		fmt.Fprintln(out)
	}

	res, err := newMergeRenderer(g.cfg, g.ctx.logger()).Render(io.Discard)
	if err != nil {
		return err
	}

	return printSummary(out, res)
}

// printSummary writes one row per source and the distinct host count.
func printSummary(w io.Writer, res *hosts.Result) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "SOURCE\tFILE\tWRITTEN\tDUPLICATES\tSKIPPED")
	for _, s := range res.Sources {
		file := s.Source
		if file == "" {
			file = "-"
		}
		fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%d\n", s.Category, file, s.Written, s.Duplicates, s.Skipped)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	_, err := fmt.Fprintf(w, "%d host entries\n", res.Total)
	return err
}
