package cli

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/terraincognita07/milla/internal/services"
)

var ErrPasswordMismatch = errors.New("passwords do not match")

type secretReader func(prompt string) ([]byte, error)

// RunHashPasswordCommand asks for the admin password twice and prints the
// bcrypt hash to put into ADMIN_PASSWORD_HASH.
func RunHashPasswordCommand(stdin *os.File, out io.Writer) error {
	return hashPassword(func(prompt string) ([]byte, error) {
		return PromptSecret(stdin, out, prompt)
	}, out)
}

func hashPassword(read secretReader, out io.Writer) error {
	password, err := read("Admin password: ")
	if err != nil {
		return fmt.Errorf("read password: %w", err)
	}
	confirmation, err := read("Repeat password: ")
	if err != nil {
		return fmt.Errorf("read password confirmation: %w", err)
	}
	if !bytes.Equal(password, confirmation) {
		return ErrPasswordMismatch
	}

	hash, err := services.HashAdminPassword(string(password))
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "ADMIN_PASSWORD_HASH=%s\n", hash)
	return nil
}
