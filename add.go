package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/exec"
	"runtime"
	"strings"
	"time"

	"golang.org/x/oauth2"
)

const (
	callbackPath    = "/oauth2callback"
	shutdownTimeout = 5 * time.Second
)

// authorizeCommand runs the browser flow for an account and checks that the
// new token can read the calendar list.
func authorizeCommand(ctx context.Context, config *Config, accountName string) error {
	db, err := openDB(config)
	if err != nil {
		return fmt.Errorf("error opening database: %w", err)
	}
	defer db.Close()

	fmt.Println("🚀 Starting account authorization...")
	if accountName == "" {
		fmt.Printf("👤 Enter account name [%s]: ", config.AccountName)
		reader := bufio.NewReader(os.Stdin)
		line, _ := reader.ReadString('\n')
		accountName = strings.TrimSpace(line)
		if accountName == "" {
			accountName = config.AccountName
		}
	}

	client, err := authorizeAccount(ctx, newOAuthConfig(config), db, accountName)
	if err != nil {
		return err
	}

	store, err := NewGoogleCalendarStore(ctx, client, config.APIEndpoint)
	if err != nil {
		return err
	}
	calendars, err := store.ListCalendars(ctx)
	if err != nil {
		return fmt.Errorf("error retrieving calendars: %w", err)
	}

	fmt.Printf("✅ Account %s authorized, %d course calendars found\n", accountName, len(calendars))
	return nil
}

// getTokenFromWeb sends the user to the consent page and waits for the
// redirect on a loopback listener.
func getTokenFromWeb(ctx context.Context, config *oauth2.Config) (*oauth2.Token, error) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return nil, fmt.Errorf("failed to start local server: %w", err)
	}
	config.RedirectURL = fmt.Sprintf("http://%s%s", listener.Addr().String(), callbackPath)

	codeCh := make(chan string, 1)
	errCh := make(chan error, 1)

	mux := http.NewServeMux()
	mux.Handle(callbackPath, callbackHandler(codeCh, errCh))
	server := &http.Server{Handler: mux}

	go func() {
		if err := server.Serve(listener); err != nil && err != http.ErrServerClosed {
			sendOnce(errCh, fmt.Errorf("local server failed: %w", err))
		}
	}()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		server.Shutdown(shutdownCtx)
	}()

	authURL := config.AuthCodeURL("state-token", oauth2.AccessTypeOffline)
	fmt.Printf("Go to the following link in your browser to authorize gcalplan:\n%v\n", authURL)
	if err := openBrowser(authURL); err != nil {
		printVerbosely(2, "  ❗️ Could not open the browser automatically: %v\n", err)
	}

	var code string
	select {
	case code = <-codeCh:
	case err := <-errCh:
		return nil, err
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	tok, err := config.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("unable to retrieve token from web: %w", err)
	}
	return tok, nil
}

// callbackHandler forwards the first authorization code or error. Later hits,
// such as a reloaded browser tab, are answered but dropped.
func callbackHandler(codeCh chan<- string, errCh chan<- error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		code := r.URL.Query().Get("code")
		if code == "" {
			sendOnce(errCh, errors.New("no authorization code received"))
			fmt.Fprintf(w, "Error: No authorization code received")
			return
		}
		sendOnce(codeCh, code)
		fmt.Fprintf(w, "Authorization successful! You can close this window and return to the terminal.")
	}
}

func sendOnce[T any](ch chan<- T, v T) {
	select {
	case ch <- v:
	default:
	}
}

func openBrowser(url string) error {
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "linux":
		cmd = exec.Command("xdg-open", url)
	case "darwin":
		cmd = exec.Command("open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		return fmt.Errorf("unsupported platform %s", runtime.GOOS)
	}

	return cmd.Start()
}
