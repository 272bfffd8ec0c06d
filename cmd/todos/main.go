package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/todos/internal/adapter"
	"github.com/mmcdole/todos/internal/adapter/source"
	"github.com/mmcdole/todos/internal/adapter/source/rest"
	"github.com/mmcdole/todos/internal/domain"
	"github.com/mmcdole/todos/internal/service"
	"github.com/mmcdole/todos/internal/tui"
	"github.com/mmcdole/todos/internal/tui/styles"
	"golang.org/x/term"
)

// Version is set at build time via -ldflags
var Version = "dev"

// clearSpinnerLine clears the spinner line from the terminal
const clearSpinnerLine = "\r                                    \r"

func main() {
	var showVersion, list bool
	var filter string
	flag.BoolVar(&showVersion, "v", false, "print version")
	flag.BoolVar(&showVersion, "version", false, "print version")
	flag.BoolVar(&list, "list", false, "print todos and exit")
	flag.StringVar(&filter, "filter", "", "filter to apply: all, active or completed")
	flag.Parse()

	if showVersion {
		fmt.Printf("todos %s\n", Version)
		return
	}

	if err := run(list, filter); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(list bool, filterFlag string) error {
	cfg, err := adapter.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := adapter.SetupLogger(&cfg.Logging)
	if err != nil {
		// Fall back to null logger if file logging fails
		logger = adapter.NullLogger()
	}
	slog.SetDefault(logger)

	logger.Info("starting todos", "version", Version)

	if !cfg.IsConfigured() {
		return runSetupFlow(cfg)
	}

	if filterFlag == "" {
		filterFlag = cfg.UI.DefaultFilter
	}
	filter, err := domain.ParseFilter(filterFlag)
	if err != nil {
		return err
	}

	repo, err := source.NewClientFromConfig(cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to create todos client: %w", err)
	}
	svc := service.NewTodoService(repo, cfg.API.UserID, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if list || !term.IsTerminal(int(os.Stdout.Fd())) {
		return runPlain(ctx, svc, filter)
	}

	model := tui.NewModel(svc, tui.Options{
		Filter:        filter,
		ErrorDuration: cfg.UI.ErrorDuration,
		Context:       ctx,
	})

	p := tea.NewProgram(model, tea.WithAltScreen())

	logger.Info("starting TUI")

	if _, err := p.Run(); err != nil {
		logger.Error("TUI error", "error", err)
		return fmt.Errorf("TUI error: %w", err)
	}

	logger.Info("shutting down")
	return nil
}

// runPlain loads the list once and prints it
func runPlain(ctx context.Context, svc *service.TodoService, filter domain.Filter) error {
	if err := svc.Load(ctx); err != nil {
		return err
	}

	width := 0
	if term.IsTerminal(int(os.Stdout.Fd())) {
		if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
			width = w
		}
	}

	fmt.Print(tui.RenderPlain(svc.Snapshot().Items, filter, width))
	return nil
}

// runSetupFlow asks for the endpoint and user on first run
func runSetupFlow(cfg *adapter.Config) error {
	fmt.Println()
	fmt.Println("Welcome to todos!")
	fmt.Println()

	reader := bufio.NewReader(os.Stdin)

	for {
		baseURL, err := prompt(reader, "Enter the todos server URL (e.g., http://127.0.0.1:4000): ")
		if err != nil {
			return err
		}
		if baseURL == "" {
			fmt.Println("Server URL cannot be empty. Please try again.")
			continue
		}

		rawID, err := prompt(reader, "Enter your user ID: ")
		if err != nil {
			return err
		}
		userID, err := strconv.Atoi(rawID)
		if err != nil || userID <= 0 {
			fmt.Println("User ID must be a positive number. Please try again.")
			continue
		}

		fmt.Println()
		if err := probeWithSpinner(baseURL, userID); err != nil {
			fmt.Printf("\n✗ Could not reach the todos API: %v\n", err)
			fmt.Println("Please check the URL and try again.")
			fmt.Println()
			continue
		}

		cfg.API.BaseURL = strings.TrimRight(baseURL, "/")
		cfg.API.UserID = userID
		break
	}

	if err := adapter.SaveConfig(cfg); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	fmt.Println()
	fmt.Println("✓ Configuration saved!")
	fmt.Println()
	fmt.Println("Run todos again to start the application.")

	return nil
}

func prompt(reader *bufio.Reader, label string) (string, error) {
	fmt.Print(label)
	input, err := reader.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return strings.TrimSpace(input), nil
}

// probeWithSpinner checks the endpoint with a visual spinner
func probeWithSpinner(baseURL string, userID int) error {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	type result struct {
		count int
		err   error
	}
	resultCh := make(chan result, 1)

	go func() {
		count, err := rest.Probe(ctx, baseURL, userID)
		resultCh <- result{count, err}
	}()

	frame := 0
	fmt.Printf("\r%s Contacting server...", styles.SpinnerFrames[frame])

	ticker := time.NewTicker(80 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case res := <-resultCh:
			fmt.Print(clearSpinnerLine)
			if res.err != nil {
				return res.err
			}
			fmt.Printf("✓ Connected: %d todos found\n", res.count)
			return nil

		case <-ticker.C:
			frame++
			fmt.Printf("\r%s Contacting server...", styles.SpinnerFrames[frame%len(styles.SpinnerFrames)])

		case <-ctx.Done():
			fmt.Print(clearSpinnerLine)
			return fmt.Errorf("connection timed out")
		}
	}
}
