// Command storefront browses the catalog and keeps a local cart in a SQLite
// file.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/mad-madhu-001/ecommerce/internal/catalog"
	"github.com/mad-madhu-001/ecommerce/internal/service"
	pkgconfig "github.com/mad-madhu-001/ecommerce/pkg/config"
	apperrors "github.com/mad-madhu-001/ecommerce/pkg/errors"
	"github.com/mad-madhu-001/ecommerce/pkg/httpclient"
	"github.com/mad-madhu-001/ecommerce/pkg/logger"
)

// cliConfig is read from the environment, then the --config file, then
// explicit flags.
type cliConfig struct {
	DB       string `env:"STOREFRONT_DB" envDefault:"storefront.db" yaml:"db"`
	Catalog  string `env:"CATALOG_PATH" yaml:"catalog"`
	Session  string `env:"STOREFRONT_SESSION" yaml:"session"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"warn" yaml:"log_level"`
}

// cli holds the state shared by every command of one invocation.
type cli struct {
	out    io.Writer
	errOut io.Writer

	configPath string
	flags      cliConfig
	jsonOutput bool

	cfg     cliConfig
	logger  *slog.Logger
	catalog *service.CatalogService
}

func main() {
	c := &cli{out: os.Stdout, errOut: os.Stderr}
	if err := c.rootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "error:", userMessage(err))
		os.Exit(1)
	}
}

func (c *cli) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "storefront",
		Short:         "Browse the FreshWear catalog and manage a local cart",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return c.setup(cmd)
		},
	}
	root.SetOut(c.out)
	root.SetErr(c.errOut)

	pf := root.PersistentFlags()
	pf.StringVar(&c.configPath, "config", "", "YAML config file")
	pf.StringVar(&c.flags.DB, "db", "", "SQLite file holding the cart (default storefront.db)")
	pf.StringVar(&c.flags.Catalog, "catalog", "", "catalog YAML file (default: bundled catalog)")
	pf.StringVar(&c.flags.Session, "session", "", "cart session name (default: the shared cart)")
	pf.StringVar(&c.flags.LogLevel, "log-level", "", "log level: debug, info, warn, error")
	pf.BoolVar(&c.jsonOutput, "json", false, "print JSON instead of tables")

	root.AddCommand(
		c.productsCmd(),
		c.productCmd(),
		c.categoriesCmd(),
		c.collectionsCmd(),
		c.cartCmd(),
	)
	return root
}

// setup resolves configuration and loads the catalog.
func (c *cli) setup(cmd *cobra.Command) error {
	var cfg cliConfig
	if err := pkgconfig.LoadFile(c.configPath, &cfg); err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("db") {
		cfg.DB = c.flags.DB
	}
	if flags.Changed("catalog") {
		cfg.Catalog = c.flags.Catalog
	}
	if flags.Changed("session") {
		cfg.Session = c.flags.Session
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = c.flags.LogLevel
	}
	if cfg.DB == "" {
		return errors.New("no cart database configured")
	}
	c.cfg = cfg
	c.logger = logger.NewWithWriter("storefront-cli", cfg.LogLevel, c.errOut)

	cat, err := catalog.Load(cmd.Context(), cfg.Catalog, httpclient.New(httpclient.DefaultConfig(), nil))
	if err != nil {
		return err
	}
	c.catalog = service.NewCatalogService(cat, c.logger)
	return nil
}

// userMessage strips error codes from application errors.
func userMessage(err error) string {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return err.Error()
}
