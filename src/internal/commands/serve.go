package commands

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/pflag"

	"github.com/mergehosts/mergehosts/src/internal/api"
	"github.com/mergehosts/mergehosts/src/internal/config"
	"github.com/mergehosts/mergehosts/src/internal/metrics"
)

func CreateServeCommand() *ServeCommand {
	return &ServeCommand{
		name: "serve",
		fs:   pflag.NewFlagSet("serve", pflag.ContinueOnError),
	}
}

// ServeCommand serves the merged hosts document over HTTP.
type ServeCommand struct {
	name string
	fs   *pflag.FlagSet
	ctx  *AppContext
	cfg  *config.Config

	// Command-specific flags
	listenAddr  string
	allowPublic bool
}

func (c *ServeCommand) Name() string {
	return c.name
}

func (c *ServeCommand) Init(args []string, ctx *AppContext) error {
	c.ctx = ctx
	c.fs.StringVar(&c.listenAddr, "listen", "", "Address to bind the HTTP server (default from server.listen_addr)")
	c.fs.BoolVar(&c.allowPublic, "allow-public", false, "Serve clients outside private networks")

	if err := c.fs.Parse(args); err != nil {
		return err
	}

	cfg, err := loadConfigOrFail(ctx)
	if err != nil {
		return err
	}
	if c.fs.Changed("listen") {
		cfg.Server.ListenAddr = c.listenAddr
	}
	if c.fs.Changed("allow-public") {
		cfg.Server.AllowPublic = c.allowPublic
	}
	if err := cfg.ValidateConfig(); err != nil {
		return err
	}
	c.cfg = cfg

	return nil
}

// Run serves until SIGINT or SIGTERM.
func (c *ServeCommand) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return c.serve(ctx)
}

func (c *ServeCommand) serve(ctx context.Context) error {
	logger := c.ctx.logger()

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	h := api.NewHandler(newMergeRenderer(c.cfg, logger), metrics.NewMergeMetrics(reg, metrics.Namespace), logger)
	router := api.NewRouter(h, api.RouterOptions{
		AllowPublic: c.cfg.Server.AllowPublic,
		Gatherer:    reg,
		Logger:      logger,
	})

	if !c.cfg.Server.AllowPublic {
		logger.Infof("Access restricted to private subnets only:")
		logger.Infof("  IPv4: 10.0.0.0/8, 172.16.0.0/12, 192.168.0.0/16, 127.0.0.0/8")
		logger.Infof("  IPv6: fc00::/7, fe80::/10, ::1/128")
	}

	server := api.NewServer(c.cfg.Server.ListenAddr, router, logger)
	if err := server.Start(ctx); err != nil {
		return err
	}

	logger.Infof("Server stopped gracefully")
	return nil
}
