package main

import (
	"bytes"
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// run executes the command line against the given home and returns what was
// printed.
func run(t *testing.T, home string, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd(&out)
	cmd.SetArgs(append([]string{"--home", home, "--log-level", "none"}, args...))
	require.NoError(t, cmd.Execute(), "estated %s", strings.Join(args, " "))
	return out.String()
}

func runErr(t *testing.T, home string, args ...string) error {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd(&out)
	cmd.SetArgs(append([]string{"--home", home, "--log-level", "none"}, args...))
	return cmd.Execute()
}

func TestCommandLine(t *testing.T) {
	home, err := ioutil.TempDir("", "estated")
	require.NoError(t, err)
	defer os.RemoveAll(home)

	run(t, home, "init",
		"--chain-id", "estate-cli-test",
		"--holder", "alice=300",
		"--holder", "bob=700",
		"--cash", "depositor=1000",
	)
	require.FileExists(t, filepath.Join(home, genesisFile))
	require.FileExists(t, filepath.Join(home, configFile))

	// The store can be initialized only once.
	require.Error(t, runErr(t, home, "init", "--chain-id", "estate-cli-test"))

	alice := strings.TrimSpace(run(t, home, "keys", "show", "alice"))
	require.True(t, strings.HasPrefix(alice, "estate1"), alice)
	require.Error(t, runErr(t, home, "keys", "new", "alice"))

	actions := strings.Join([]string{
		`{"signer": "depositor", "time": "2019-06-01T10:00:00Z", "path": "income/deposit", "msg": {"amount": 100}}`,
		fmt.Sprintf(`{"signer": "alice", "time": "2019-06-01T11:00:00Z", "path": "income/claim", "msg": {"holder": %q}}`, alice),
		`# a rejected action does not stop the run`,
		`{"signer": "bob", "time": "2019-06-01T11:00:00Z", "path": "income/deposit", "msg": {"amount": 1}}`,
		fmt.Sprintf(`{"signer": "alice", "time": "2019-06-01T12:00:00Z", "path": "gov/create_proposal", "msg": {"proposer": %q, "description": "Renovate the lobby"}}`, alice),
	}, "\n")
	file := filepath.Join(home, "actions.jsonl")
	require.NoError(t, ioutil.WriteFile(file, []byte(actions), 0600))

	out := run(t, home, "exec", "--metrics", file)
	require.Contains(t, out, `"income_deposited"`)
	require.Contains(t, out, `"income_claimed"`)
	require.Contains(t, out, `"proposal_created"`)
	require.Contains(t, out, `"error"`)
	require.Contains(t, out, `estate_delivered_tx_total{code="0",path="income/deposit"} 1`)

	require.Equal(t, "0\n", run(t, home, "query", "claimable", "alice"))
	require.Equal(t, "70\n", run(t, home, "query", "claimable", "bob"))
	require.Equal(t, "1\n", run(t, home, "query", "count"))

	out = run(t, home, "query", "balance", "alice")
	require.Contains(t, out, `"cash": 30`)
	require.Contains(t, out, `"shares": 300`)

	out = run(t, home, "query", "proposal", "1", "--at", "2019-06-01T13:00:00Z")
	require.Contains(t, out, `"status": "voting"`)

	out = run(t, home, "query", "outcome", "1", "--at", "2019-06-05T00:00:00Z")
	require.Contains(t, out, `"passed": false`)

	require.Error(t, runErr(t, home, "query", "proposal", "2"))
}

func TestQueryRequiresInit(t *testing.T) {
	home, err := ioutil.TempDir("", "estated")
	require.NoError(t, err)
	defer os.RemoveAll(home)

	require.Error(t, runErr(t, home, "query", "count"))
}

func TestInitFromGenesisFile(t *testing.T) {
	src, err := ioutil.TempDir("", "estated")
	require.NoError(t, err)
	defer os.RemoveAll(src)
	dst, err := ioutil.TempDir("", "estated")
	require.NoError(t, err)
	defer os.RemoveAll(dst)

	run(t, src, "init", "--chain-id", "estate-copy-test", "--holder", "alice=300")
	alice := strings.TrimSpace(run(t, src, "keys", "show", "alice"))

	require.Error(t, runErr(t, dst, "init", "--genesis", filepath.Join(dst, "missing.json")))

	out := run(t, dst, "init", "--genesis", filepath.Join(src, genesisFile))
	require.Contains(t, out, `"estate-copy-test"`)
	require.FileExists(t, filepath.Join(dst, genesisFile))

	out = run(t, dst, "query", "balance", alice)
	require.Contains(t, out, `"shares": 300`)
}
