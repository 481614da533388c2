package storage

import (
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrEmptyInput is returned when a required answer is blank.
var ErrEmptyInput = errors.New("input must not be empty")

// LineScanner yields input one line at a time. *bufio.Scanner satisfies it.
type LineScanner interface {
	Scan() bool
	Text() string
	Err() error
}

// PromptCredentials asks for the admin username and password. The scanner is
// shared with the caller so buffered input is not lost between prompts.
func PromptCredentials(scanner LineScanner, out io.Writer) (username, password string, err error) {
	if username, err = ask(scanner, out, "Username: "); err != nil {
		return "", "", err
	}
	if password, err = ask(scanner, out, "Password: "); err != nil {
		return "", "", err
	}
	return username, password, nil
}

// PromptPasswordChange asks for the current password and the new one twice.
func PromptPasswordChange(scanner LineScanner, out io.Writer) (current, next string, err error) {
	if current, err = ask(scanner, out, "Current password: "); err != nil {
		return "", "", err
	}
	if next, err = ask(scanner, out, "New password: "); err != nil {
		return "", "", err
	}
	confirm, err := ask(scanner, out, "Repeat new password: ")
	if err != nil {
		return "", "", err
	}
	if confirm != next {
		return "", "", errors.New("passwords do not match")
	}
	return current, next, nil
}

func ask(scanner LineScanner, out io.Writer, prompt string) (string, error) {
	fmt.Fprint(out, prompt)
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return "", err
		}
		return "", io.ErrUnexpectedEOF
	}
	v := strings.TrimSpace(scanner.Text())
	if v == "" {
		return "", ErrEmptyInput
	}
	return v, nil
}
