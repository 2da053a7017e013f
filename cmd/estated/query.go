package main

import (
	"strconv"
	"time"

	estated "github.com/iov-one/estate/cmd/estated/app"
	"github.com/iov-one/estate/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
)

func (c *cli) queryCmd() *cobra.Command {
	var at string
	query := &cobra.Command{
		Use:   "query",
		Short: "Read the current state",
	}
	query.PersistentFlags().StringVar(&at, "at", "", "evaluate at this time (RFC 3339), defaults to now")

	// read opens the engine and passes it to fn.
	read := func(fn func(e *estated.Engine, args []string) (interface{}, error)) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, args []string) error {
			now := time.Now()
			if at != "" {
				t, err := time.Parse(time.RFC3339, at)
				if err != nil {
					return errors.Wrap(errors.ErrInput, err.Error())
				}
				now = t
			}
			e, closeStore, err := c.openEngine(prometheus.NewRegistry(), func() time.Time { return now })
			if err != nil {
				return err
			}
			defer closeStore()
			res, err := fn(e, args)
			if err != nil {
				return err
			}
			return c.printJSON(res)
		}
	}

	query.AddCommand(
		&cobra.Command{
			Use:   "claimable <holder>",
			Short: "Income the holder can claim now",
			Args:  cobra.ExactArgs(1),
			RunE: read(func(e *estated.Engine, args []string) (interface{}, error) {
				addr, err := c.resolveAddress(args[0])
				if err != nil {
					return nil, err
				}
				return e.GetClaimable(addr)
			}),
		},
		&cobra.Command{
			Use:   "ledger",
			Short: "Income totals",
			Args:  cobra.NoArgs,
			RunE: read(func(e *estated.Engine, args []string) (interface{}, error) {
				return e.Ledger()
			}),
		},
		&cobra.Command{
			Use:   "balance <address>",
			Short: "Share and cash balance of an address",
			Args:  cobra.ExactArgs(1),
			RunE: read(func(e *estated.Engine, args []string) (interface{}, error) {
				addr, err := c.resolveAddress(args[0])
				if err != nil {
					return nil, err
				}
				sh, err := e.BalanceOf(addr)
				if err != nil {
					return nil, err
				}
				supply, err := e.TotalSupply()
				if err != nil {
					return nil, err
				}
				funds, err := e.CashBalance(addr)
				if err != nil {
					return nil, err
				}
				return map[string]interface{}{
					"address": addr,
					"shares":  sh,
					"supply":  supply,
					"cash":    funds,
				}, nil
			}),
		},
		&cobra.Command{
			Use:   "proposal <id>",
			Short: "Show a proposal and its status",
			Args:  cobra.ExactArgs(1),
			RunE: read(func(e *estated.Engine, args []string) (interface{}, error) {
				id, err := parseID(args[0])
				if err != nil {
					return nil, err
				}
				p, err := e.GetProposal(id)
				if err != nil {
					return nil, err
				}
				status, err := e.GetStatus(id)
				if err != nil {
					return nil, err
				}
				return map[string]interface{}{
					"proposal": p,
					"status":   status,
				}, nil
			}),
		},
		&cobra.Command{
			Use:   "outcome <id>",
			Short: "Evaluate a proposal",
			Args:  cobra.ExactArgs(1),
			RunE: read(func(e *estated.Engine, args []string) (interface{}, error) {
				id, err := parseID(args[0])
				if err != nil {
					return nil, err
				}
				return e.GetOutcome(id)
			}),
		},
		&cobra.Command{
			Use:   "count",
			Short: "Number of proposals",
			Args:  cobra.NoArgs,
			RunE: read(func(e *estated.Engine, args []string) (interface{}, error) {
				return e.GetProposalCount()
			}),
		},
	)
	return query
}

func parseID(s string) (uint64, error) {
	id, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, errors.Wrapf(errors.ErrInput, "proposal id %q", s)
	}
	return id, nil
}
