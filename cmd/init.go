package cmd

import (
	"errors"
	"os"

	"github.com/taskbazaar/paymentd/repo"
)

// Init initializes a new paymentd data directory at the provided path.
type Init struct {
	DataDir string `short:"d" long:"datadir" description:"Directory to store data"`
	Force   bool   `short:"f" long:"force" description:"Force overwrite existing repo (dangerous!)"`
}

// Execute initializes the paymentd data directory.
func (x *Init) Execute(args []string) error {
	if x.DataDir == "" {
		x.DataDir = repo.DefaultHomeDir
	}

	if repo.IsInitialized(x.DataDir) && !x.Force {
		return errors.New("repo is already initialized")
	}

	os.RemoveAll(x.DataDir)

	r, err := repo.NewRepo(x.DataDir)
	if err != nil {
		return err
	}
	r.Close()
	return nil
}
