/*
Command estated administers a fractionally owned property: it keeps the share
register, distributes rental income to holders and runs text proposal votes.

State lives in a persistent store under the home directory. Every state
change is an ed25519 signed transaction applied by the exec command.
*/
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	estate "github.com/iov-one/estate"
	"github.com/iov-one/estate/errors"
	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/tendermint/tendermint/libs/log"
)

const (
	configFile  = "config.yaml"
	genesisFile = "genesis.json"
	keysDir     = "keys"

	cfgChainID  = "chain_id"
	cfgLogLevel = "log_level"
	cfgDatabase = "db"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

func main() {
	if err := newRootCmd(os.Stdout).Execute(); err != nil {
		os.Exit(1)
	}
}

// cli carries the state shared by all commands.
type cli struct {
	conf   *viper.Viper
	home   string
	out    io.Writer
	logger log.Logger
}

func newRootCmd(out io.Writer) *cobra.Command {
	c := &cli{conf: viper.New(), out: out}

	root := &cobra.Command{
		Use:               "estated",
		Short:             "Fractional real estate governance and income sharing",
		SilenceUsage:      true,
		PersistentPreRunE: c.setup,
	}
	root.SetOutput(out)

	defaultHome := filepath.Join(os.ExpandEnv("$HOME"), ".estated")
	flags := root.PersistentFlags()
	flags.StringVar(&c.home, "home", defaultHome, "directory to store files under")
	flags.String("log-level", "info", "log level: debug, info, error or none")
	flags.String("db", "data/estate", "database path, relative to home")
	c.conf.BindPFlag(cfgLogLevel, flags.Lookup("log-level"))
	c.conf.BindPFlag(cfgDatabase, flags.Lookup("db"))

	root.AddCommand(
		c.initCmd(),
		c.keysCmd(),
		c.execCmd(),
		c.queryCmd(),
		&cobra.Command{
			Use:   "version",
			Short: "Print the version",
			Run: func(*cobra.Command, []string) {
				fmt.Fprintln(c.out, estate.Version())
			},
		},
	)
	return root
}

// setup loads the configuration file, if any, and builds the logger.
func (c *cli) setup(cmd *cobra.Command, args []string) error {
	path := filepath.Join(c.home, configFile)
	c.conf.SetConfigFile(path)
	if _, err := os.Stat(path); err == nil {
		if err := c.conf.ReadInConfig(); err != nil {
			return errors.Wrapf(errors.ErrInput, "read %s: %s", path, err)
		}
	}

	logger := log.NewTMLogger(log.NewSyncWriter(os.Stderr)).With("module", "estated")
	switch lvl := c.conf.GetString(cfgLogLevel); lvl {
	case "none":
		logger = log.NewNopLogger()
	default:
		opt, err := log.AllowLevel(lvl)
		if err != nil {
			return errors.Wrap(errors.ErrInput, err.Error())
		}
		logger = log.NewFilter(logger, opt)
	}
	c.logger = logger
	return nil
}

func (c *cli) path(elem ...string) string {
	return filepath.Join(append([]string{c.home}, elem...)...)
}

func (c *cli) databasePath() string {
	db := c.conf.GetString(cfgDatabase)
	if filepath.IsAbs(db) {
		return db
	}
	return c.path(db)
}

func (c *cli) printJSON(v interface{}) error {
	raw, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errors.Wrap(err, "marshal output")
	}
	_, err = fmt.Fprintln(c.out, string(raw))
	return err
}
