package cli

import "github.com/julianstephens/almanac/internal/keyring"

type KeyringCmd struct {
	Set    KeyringSetCmd    `cmd:"" help:"Store a secret (default: the database connection string)."`
	Get    KeyringGetCmd    `cmd:"" help:"Print a stored secret."`
	Delete KeyringDeleteCmd `cmd:"" help:"Remove a stored secret."`
}

type KeyringSetCmd struct {
	Value   string `arg:"" help:"Secret to store."`
	Account string `help:"Keyring account name." default:"${keyring_user}"`
}

func (c *KeyringSetCmd) Run(ctx *Context) error {
	if err := keyring.Set(c.Account, c.Value); err != nil {
		return err
	}
	ctx.printf("Stored %q in the OS keyring\n", c.Account)
	return nil
}

type KeyringGetCmd struct {
	Account string `help:"Keyring account name." default:"${keyring_user}"`
}

func (c *KeyringGetCmd) Run(ctx *Context) error {
	secret, err := keyring.Get(c.Account)
	if err != nil {
		return err
	}
	ctx.printf("%s\n", secret)
	return nil
}

type KeyringDeleteCmd struct {
	Account string `help:"Keyring account name." default:"${keyring_user}"`
}

func (c *KeyringDeleteCmd) Run(ctx *Context) error {
	if err := keyring.Delete(c.Account); err != nil {
		return err
	}
	ctx.printf("Removed %q from the OS keyring\n", c.Account)
	return nil
}
