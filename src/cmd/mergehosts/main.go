package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"github.com/mergehosts/mergehosts/src/internal/commands"
	"github.com/mergehosts/mergehosts/src/internal/config"
	"github.com/mergehosts/mergehosts/src/internal/log"
)

var (
	version = "dev"
	commit  = "n/a"
	date    = "n/a"
)

const defaultCommand = "merge"

func main() {
	ctx := &commands.AppContext{Logger: log.Default()}

	fs := pflag.NewFlagSet(os.Args[0], pflag.ContinueOnError)
	fs.SetInterspersed(false)

	var (
		verbosity   int
		showVersion bool
	)
	fs.CountVarP(&verbosity, "verbose", "v", "Increase verbosity (repeat up to 3 times: -vvv)")
	fs.StringVarP(&ctx.Overrides.Local, "local", "l", "", "File of local hostnames (optional)")
	fs.StringVarP(&ctx.Overrides.HardCoded, "hard", "c", "", "File of hard coded \"address hostname\" pairs (default "+config.DefaultHardCodedFile+")")
	fs.StringVarP(&ctx.Overrides.Untrusted, "untrusted", "u", "", "File of untrusted hostnames (default "+config.DefaultUntrustedFile+")")
	fs.StringVarP(&ctx.Overrides.External, "external", "e", "", "External hosts file (default "+config.DefaultExternalFile+")")
	fs.StringVarP(&ctx.Overrides.Destination, "destination", "d", "", "Destination file (default "+config.DefaultDestination+")")
	fs.StringVar(&ctx.ConfigPath, "config", "", "Path to TOML configuration file (optional)")
	fs.BoolVar(&showVersion, "version", false, "Print version and exit")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "MergeHosts: builds a hosts file from local, trusted and blocked host lists\n")
		fmt.Fprintf(os.Stderr, "Version: %s (Commit: %s, Date: %s)\n\n", version, commit, date)
		fmt.Fprintf(os.Stderr, "Usage: %s [options] [command]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Commands:\n")
		fmt.Fprintf(os.Stderr, "  merge                   Merge the sources into the destination file (default)\n")
		fmt.Fprintf(os.Stderr, "  check                   Validate configuration and sources, print per-source summary\n")
		fmt.Fprintf(os.Stderr, "  download                Download the external hosts list from external.url\n")
		fmt.Fprintf(os.Stderr, "  serve                   Serve the merged hosts document over HTTP\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			os.Exit(0)
		}
		log.Fatalf("%v", err)
	}

	if showVersion {
		fmt.Printf("mergehosts %s (Commit: %s, Date: %s)\n", version, commit, date)
		os.Exit(0)
	}

	if fs.Changed("verbose") {
		ctx.Overrides.Verbosity = &verbosity
	}

	cmds := []commands.Runner{
		commands.CreateMergeCommand(),
		commands.CreateCheckCommand(),
		commands.CreateDownloadCommand(),
		commands.CreateServeCommand(),
	}

	args := fs.Args()
	subcommand := defaultCommand
	if len(args) > 0 {
		subcommand, args = args[0], args[1:]
	}

	for _, cmd := range cmds {
		if cmd.Name() == subcommand {
			if err := cmd.Init(args, ctx); err != nil {
				if errors.Is(err, pflag.ErrHelp) {
					os.Exit(0)
				}
				log.Fatalf("Failed to initialize command: %v", err)
			}

			if err := cmd.Run(); err != nil {
				log.Fatalf("Failed to run command: %v", err)
			}

			os.Exit(0)
		}
	}

	fs.Usage()
	log.Fatalf("Unknown subcommand: %s", subcommand)
}
