package main

import (
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"
	"regexp"

	estate "github.com/iov-one/estate"
	"github.com/iov-one/estate/crypto"
	"github.com/iov-one/estate/errors"
	"github.com/spf13/cobra"
)

var isKeyName = regexp.MustCompile(`^[a-zA-Z0-9_\-]{1,40}$`).MatchString

func (c *cli) keysCmd() *cobra.Command {
	keys := &cobra.Command{
		Use:   "keys",
		Short: "Manage signing keys",
	}
	keys.AddCommand(
		&cobra.Command{
			Use:   "new <name>",
			Short: "Generate a new ed25519 key",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				key, err := c.newKey(args[0])
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(c.out, key.PublicKey().Address())
				return err
			},
		},
		&cobra.Command{
			Use:   "show <name>",
			Short: "Print the address of a key",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				key, err := c.loadKey(args[0])
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(c.out, key.PublicKey().Address())
				return err
			},
		},
	)
	return keys
}

func (c *cli) keyPath(name string) (string, error) {
	if !isKeyName(name) {
		return "", errors.Wrapf(errors.ErrInput, "invalid key name %q", name)
	}
	return c.path(keysDir, name+".key"), nil
}

func (c *cli) newKey(name string) (*crypto.PrivateKey, error) {
	path, err := c.keyPath(name)
	if err != nil {
		return nil, err
	}
	if _, err := os.Stat(path); err == nil {
		return nil, errors.Wrapf(errors.ErrDuplicate, "key %q", name)
	}
	key := crypto.GenPrivKeyEd25519()
	raw, err := key.Marshal()
	if err != nil {
		return nil, errors.Wrap(err, "marshal key")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, errors.Wrap(errors.ErrInput, err.Error())
	}
	if err := ioutil.WriteFile(path, raw, 0600); err != nil {
		return nil, errors.Wrap(errors.ErrInput, err.Error())
	}
	c.logger.Info("Key created", "name", name, "address", key.PublicKey().Address())
	return key, nil
}

func (c *cli) loadKey(name string) (*crypto.PrivateKey, error) {
	path, err := c.keyPath(name)
	if err != nil {
		return nil, err
	}
	raw, err := ioutil.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrapf(errors.ErrNotFound, "key %q", name)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrInput, err.Error())
	}
	var key crypto.PrivateKey
	if err := key.Unmarshal(raw); err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "key %q: %s", name, err)
	}
	return &key, nil
}

// loadOrCreateKey returns the named key, generating it on first use.
func (c *cli) loadOrCreateKey(name string) (*crypto.PrivateKey, error) {
	key, err := c.loadKey(name)
	if errors.ErrNotFound.Is(err) {
		return c.newKey(name)
	}
	return key, err
}

// resolveAddress accepts a key name or any address format understood by
// estate.ParseAddress.
func (c *cli) resolveAddress(s string) (estate.Address, error) {
	if isKeyName(s) {
		if key, err := c.loadKey(s); err == nil {
			return key.PublicKey().Address(), nil
		}
	}
	return estate.ParseAddress(s)
}
