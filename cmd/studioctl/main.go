// Package main is studioctl, the command-line admin console for the studio
// API: log in once, then moderate comments, read contact submissions and
// reorder the portfolio from a shell.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/fusedlens/studio/internal/client/api"
	"github.com/fusedlens/studio/internal/client/shell"
	"github.com/fusedlens/studio/internal/client/storage"
)

var (
	version   string
	buildDate string
)

func main() {
	var (
		cmd       string
		baseURL   string
		tokenFile string
		caFile    string
		showVer   bool
	)

	flag.StringVar(&cmd, "cmd", "shell", "command: login | shell | logout")
	flag.StringVar(&baseURL, "url", "http://localhost:3001", "studio API base URL")
	flag.StringVar(&tokenFile, "token-file", "", "session file (default ~/.studioctl/token)")
	flag.StringVar(&caFile, "ca", "", "extra CA certificate to trust, e.g. certs/server.crt")
	flag.BoolVar(&showVer, "version", false, "show build version and date")
	flag.Parse()

	if showVer {
		fmt.Printf("studioctl\nVersion: %s\nBuild Date: %s\n", version, buildDate)
		return
	}

	if tokenFile == "" {
		p, err := storage.DefaultPath()
		if err != nil {
			log.Fatal(err)
		}
		tokenFile = p
	}
	tokens := storage.NewTokenStore(tokenFile)
	baseURL = strings.TrimRight(baseURL, "/")

	hc, err := api.NewHTTPClient(caFile)
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	switch cmd {
	case "login":
		if err := login(ctx, api.New(baseURL, hc, ""), tokens, baseURL); err != nil {
			log.Fatal(err)
		}
	case "shell":
		sess, err := tokens.Load()
		if err != nil {
			log.Fatal(err)
		}
		if flagSet("url") && sess.URL != baseURL {
			log.Fatalf("saved session is for %s, log in again with -url %s", sess.URL, baseURL)
		}
		client := api.New(sess.URL, hc, sess.Token)
		if _, err := client.Verify(ctx); err != nil {
			if api.IsUnauthorized(err) {
				log.Fatal("session expired, run studioctl -cmd login")
			}
			log.Fatal(err)
		}
		fmt.Printf("Logged in to %s as %s. Type 'help' for commands.\n", sess.URL, sess.Username)
		if err := shell.Run(ctx, os.Stdin, os.Stdout, client); err != nil {
			log.Fatal(err)
		}
	case "logout":
		if err := tokens.Clear(); err != nil {
			log.Fatal(err)
		}
		fmt.Println("Logged out")
	default:
		log.Fatalf("unknown command: %s", cmd)
	}
}

func login(ctx context.Context, client *api.Client, tokens *storage.TokenStore, baseURL string) error {
	username, password, err := storage.PromptCredentials(storage.NewLineReader(ctx, os.Stdin), os.Stdout)
	if err != nil {
		if ctx.Err() != nil {
			return errors.New("login cancelled")
		}
		return err
	}
	token, err := client.Login(ctx, username, password)
	if err != nil {
		var apiErr *api.Error
		if errors.As(err, &apiErr) {
			return errors.New(apiErr.Message)
		}
		return err
	}
	sess := storage.Session{URL: baseURL, Username: username, Token: token, SavedAt: time.Now().UTC()}
	if err := tokens.Save(sess); err != nil {
		return err
	}
	fmt.Printf("Logged in as %s, session saved to %s\n", username, tokens.Path())
	return nil
}

func flagSet(name string) bool {
	found := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == name {
			found = true
		}
	})
	return found
}
