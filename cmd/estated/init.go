package main

import (
	"strconv"
	"strings"
	"time"

	estate "github.com/iov-one/estate"
	"github.com/iov-one/estate/app"
	estated "github.com/iov-one/estate/cmd/estated/app"
	"github.com/iov-one/estate/errors"
	"github.com/iov-one/estate/x/cash"
	"github.com/iov-one/estate/x/shares"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
)

type initFlags struct {
	genesis       string
	chainID       string
	depositor     string
	owner         string
	issuer        string
	holders       []string
	accounts      []string
	minTokens     uint64
	votingPeriod  time.Duration
	supermajority uint32
	quorum        uint32
}

func (c *cli) initCmd() *cobra.Command {
	var f initFlags
	gov := estated.DefaultGovConfiguration()
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create the genesis file and initialize the store",
		Long: `Create the genesis file and initialize the store.

Roles and balances refer to key names. Missing keys are generated.
With --genesis an existing genesis file is used and the other flags are ignored.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runInit(f)
		},
	}
	fl := cmd.Flags()
	fl.StringVar(&f.genesis, "genesis", "", "initialize from this genesis file")
	fl.StringVar(&f.chainID, "chain-id", "estate-dev", "chain id")
	fl.StringVar(&f.depositor, "depositor", "depositor", "key allowed to deposit income")
	fl.StringVar(&f.owner, "owner", "owner", "key allowed to sweep rounding dust")
	fl.StringVar(&f.issuer, "issuer", "issuer", "key allowed to issue new shares")
	fl.StringSliceVar(&f.holders, "holder", nil, "initial share holding as name=amount, repeatable")
	fl.StringSliceVar(&f.accounts, "cash", nil, "initial income currency balance as name=amount, repeatable")
	fl.Uint64Var(&f.minTokens, "min-tokens", gov.MinTokensToPropose, "shares required to create a proposal")
	fl.DurationVar(&f.votingPeriod, "voting-period", time.Duration(gov.VotingPeriodSeconds)*time.Second, "voting window length")
	fl.Uint32Var(&f.supermajority, "supermajority", gov.SupermajorityPercent, "percent of cast votes required to pass")
	fl.Uint32Var(&f.quorum, "quorum", gov.QuorumPercent, "percent of supply that must vote, zero disables")
	return cmd
}

func (c *cli) runInit(f initFlags) error {
	gen, err := c.initGenesis(f)
	if err != nil {
		return err
	}

	a, closeStore, err := c.openApplication(prometheus.NewRegistry())
	if err != nil {
		return err
	}
	defer closeStore()
	if id := a.ChainID(); id != "" {
		return errors.Wrapf(errors.ErrState, "store already initialized for %q", id)
	}
	if err := app.SaveGenesis(c.path(genesisFile), gen); err != nil {
		return err
	}
	if err := a.InitChain(gen); err != nil {
		return err
	}
	if _, err := a.Commit(); err != nil {
		return err
	}

	c.conf.Set(cfgChainID, gen.ChainID)
	if err := c.conf.WriteConfigAs(c.path(configFile)); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	return c.printJSON(gen)
}

// initGenesis loads the genesis file given with --genesis or builds one from
// the flags.
func (c *cli) initGenesis(f initFlags) (estate.Genesis, error) {
	if f.genesis != "" {
		return app.LoadGenesis(f.genesis)
	}

	gc := estated.GenesisConfig{ChainID: f.chainID}
	gc.Gov.MinTokensToPropose = f.minTokens
	gc.Gov.VotingPeriodSeconds = int64(f.votingPeriod / time.Second)
	gc.Gov.SupermajorityPercent = f.supermajority
	gc.Gov.QuorumPercent = f.quorum

	for _, role := range []struct {
		name string
		dest *estate.Address
	}{
		{f.depositor, &gc.Income.Depositor},
		{f.owner, &gc.Income.Owner},
		{f.issuer, &gc.Shares.Issuer},
	} {
		key, err := c.loadOrCreateKey(role.name)
		if err != nil {
			return estate.Genesis{}, err
		}
		*role.dest = key.PublicKey().Address()
	}

	holdings, err := c.parseBalances(f.holders)
	if err != nil {
		return estate.Genesis{}, errors.Wrap(err, "holder")
	}
	for _, h := range holdings {
		gc.Holders = append(gc.Holders, shares.GenesisHolding{Address: h.Address, Balance: h.Balance})
	}
	if gc.Accounts, err = c.parseBalances(f.accounts); err != nil {
		return estate.Genesis{}, errors.Wrap(err, "cash")
	}
	return gc.Genesis()
}

// parseBalances reads name=amount pairs.
func (c *cli) parseBalances(pairs []string) ([]cash.GenesisAccount, error) {
	var out []cash.GenesisAccount
	for _, p := range pairs {
		chunks := strings.SplitN(p, "=", 2)
		if len(chunks) != 2 {
			return nil, errors.Wrapf(errors.ErrInput, "%q is not name=amount", p)
		}
		amount, err := strconv.ParseUint(chunks[1], 10, 64)
		if err != nil {
			return nil, errors.Wrapf(errors.ErrAmount, "%q: %s", p, err)
		}
		key, err := c.loadOrCreateKey(chunks[0])
		if err != nil {
			return nil, err
		}
		out = append(out, cash.GenesisAccount{Address: key.PublicKey().Address(), Balance: amount})
	}
	return out, nil
}
