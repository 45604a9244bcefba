package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"golang.org/x/term"

	"github.com/mmcdole/marquee/internal/config"
	"github.com/mmcdole/marquee/internal/domain"
	"github.com/mmcdole/marquee/internal/tmdb"
)

// clearSpinnerLine clears the spinner line from the terminal
const clearSpinnerLine = "\r                                    \r"

// validateTimeout bounds the API key check
const validateTimeout = 15 * time.Second

// runSetupFlow asks for an API key until one validates, then saves it
func runSetupFlow(configDir string, cfg *config.Config, logger *slog.Logger) error {
	fmt.Println()
	fmt.Println("Welcome to marquee!")
	fmt.Println()
	fmt.Println("A TMDB API key is required. Create one at")
	fmt.Println("https://www.themoviedb.org/settings/api")
	fmt.Println()

	for {
		apiKey, err := readAPIKey()
		if err != nil {
			return err
		}
		if apiKey == "" {
			fmt.Println("API key cannot be empty. Please try again.")
			continue
		}

		client := tmdb.NewClient(cfg.TMDB.BaseURL, apiKey, logger, tmdb.WithTimeout(validateTimeout))
		if err := validateWithSpinner(client); err != nil {
			fmt.Printf("✗ %s\n", describeSetupError(err))
			fmt.Println()
			if errors.Is(err, domain.ErrAuthFailed) {
				continue
			}
			return fmt.Errorf("could not validate API key: %w", err)
		}

		cfg.TMDB.APIKey = apiKey
		break
	}

	if err := config.Save(configDir, cfg); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	fmt.Println()
	fmt.Println("✓ Configuration saved!")
	fmt.Println()
	fmt.Println("Run marquee again to start the application.")

	return nil
}

// readAPIKey prompts for the key, hiding input on a terminal
func readAPIKey() (string, error) {
	fmt.Print("API key: ")

	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		input, err := bufio.NewReader(os.Stdin).ReadString('\n')
		if err != nil {
			return "", fmt.Errorf("failed to read API key: %w", err)
		}
		return strings.TrimSpace(input), nil
	}

	keyBytes, err := term.ReadPassword(fd)
	fmt.Println() // Add newline after hidden input
	if err != nil {
		return "", fmt.Errorf("failed to read API key: %w", err)
	}
	return strings.TrimSpace(string(keyBytes)), nil
}

// validateWithSpinner checks the key with a visual spinner
func validateWithSpinner(client *tmdb.Client) error {
	ctx, cancel := context.WithTimeout(context.Background(), validateTimeout)
	defer cancel()

	resultCh := make(chan error, 1)
	go func() {
		resultCh <- client.ValidateKey(ctx)
	}()

	frames := spinner.Dot.Frames
	frame := 0
	fmt.Printf("\r%s Checking API key...", frames[frame])

	ticker := time.NewTicker(spinner.Dot.FPS)
	defer ticker.Stop()

	for {
		select {
		case err := <-resultCh:
			fmt.Print(clearSpinnerLine)
			if err != nil {
				return err
			}
			fmt.Println("✓ API key accepted")
			return nil

		case <-ticker.C:
			frame++
			fmt.Printf("\r%s Checking API key...", frames[frame%len(frames)])

		case <-ctx.Done():
			fmt.Print(clearSpinnerLine)
			return fmt.Errorf("validation timed out")
		}
	}
}

func describeSetupError(err error) string {
	switch {
	case errors.Is(err, domain.ErrAuthFailed):
		return "The API key was rejected. Please try again."
	case errors.Is(err, domain.ErrServerOffline), errors.Is(err, domain.ErrNoConnection):
		return "Could not reach TMDB. Check your network connection."
	default:
		return err.Error()
	}
}
