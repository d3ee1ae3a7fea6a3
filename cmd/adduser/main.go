// Command adduser creates a user directly in the archive database. There is
// no registration endpoint; accounts are provisioned from the shell.
//
// Usage:
//
//	adduser <db> <username> [password]
//
// When the password argument is omitted it is read from the terminal with
// echo disabled.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"golang.org/x/term"

	"linkarchive/internal/common"
	"linkarchive/internal/server/repositories/repomanager"
	"linkarchive/internal/server/services"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "adduser: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	if len(args) < 2 || len(args) > 3 {
		return errors.New("usage: adduser <db> <username> [password]")
	}
	dbPath, username := args[0], args[1]

	var password []byte
	if len(args) == 3 {
		password = []byte(args[2])
	} else {
		fmt.Fprint(os.Stderr, "password: ")
		p, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Fprintln(os.Stderr)
		if err != nil {
			return fmt.Errorf("reading password: %w", err)
		}
		password = p
	}
	if len(password) == 0 {
		return errors.New("empty password")
	}

	repos, err := repomanager.NewSQLiteRepositoryManager(dbPath)
	if err != nil {
		return err
	}
	defer repos.Close()

	user, err := services.NewUserService(repos.Users()).Create(context.Background(), username, password)
	if err != nil {
		var dup *common.DuplicateNameError
		if errors.As(err, &dup) {
			return fmt.Errorf("username %q is taken", username)
		}
		return err
	}

	fmt.Printf("created user %q with id %d\n", user.Name, user.ID)
	return nil
}
