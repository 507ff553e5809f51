// One-off maintenance tool for the encrypted session file: show the
// stored record or re-encrypt it under a new passphrase.
// Usage: go run ./cmd/sessiontool -file wallet-session.pkw [-reencrypt]
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"pkwallet/internal/session"

	"golang.org/x/term"
)

func main() {
	var (
		file      = flag.String("file", "wallet-session.pkw", "session file path")
		reencrypt = flag.Bool("reencrypt", false, "re-encrypt under a new passphrase")
	)
	flag.Parse()

	passphrase, err := promptPassphrase("Enter session store passphrase: ")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer clear(passphrase)

	store, err := session.NewFileStore(*file, passphrase)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	ctx := context.Background()
	rec, err := store.Get(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	fmt.Printf("id:            %s\n", rec.ID)
	fmt.Printf("address:       %s\n", rec.Address)
	fmt.Printf("credential:    %s\n", rec.CredentialID)
	fmt.Printf("created:       %s\n", rec.CreatedAt)
	fmt.Printf("last access:   %s\n", rec.LastAccessAt)

	if !*reencrypt {
		return
	}

	newPassphrase, err := promptPassphrase("Enter new passphrase: ")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer clear(newPassphrase)

	newStore, err := session.NewFileStore(*file, newPassphrase)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if err := newStore.Put(ctx, rec); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	fmt.Println("re-encrypted")
}

func promptPassphrase(prompt string) ([]byte, error) {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return nil, fmt.Errorf("stdin is not a terminal")
	}
	fmt.Fprint(os.Stderr, prompt)
	defer fmt.Fprintln(os.Stderr)

	raw, err := term.ReadPassword(int(os.Stdin.Fd()))
	if err != nil {
		return nil, fmt.Errorf("failed to read passphrase: %w", err)
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("passphrase cannot be empty")
	}
	return raw, nil
}
