// Garderoba: personal wardrobe tracker and outfit assistant.
//
// Usage:
//
//	garderoba [flags] [serve]   # HTTP API (default)
//	garderoba [flags] mcp       # MCP server on stdio
//	garderoba [flags] chat      # interactive chat in the terminal
package main

import (
	"context"
	"crypto/rand"
	"database/sql"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"math/big"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mark3labs/mcp-go/server"
	"golang.org/x/crypto/bcrypt"

	"github.com/erazemk/garderoba/internal/api"
	"github.com/erazemk/garderoba/internal/assistant"
	"github.com/erazemk/garderoba/internal/config"
	"github.com/erazemk/garderoba/internal/db"
	"github.com/erazemk/garderoba/internal/mcptools"
	"github.com/erazemk/garderoba/internal/store"
	"github.com/erazemk/garderoba/internal/tui"
	"github.com/erazemk/garderoba/internal/wardrobe"
)

// Version is the release version.
const Version = "0.1.0"

// Subcommands.
const (
	cmdServe = "serve"
	cmdMCP   = "mcp"
	cmdChat  = "chat"
)

// levelRouter is a slog.Handler that routes INFO/WARN to stdout and ERROR+ to stderr.
type levelRouter struct {
	stdout slog.Handler
	stderr slog.Handler
}

func (lr *levelRouter) Enabled(_ context.Context, level slog.Level) bool {
	return level >= slog.LevelInfo
}

func (lr *levelRouter) Handle(ctx context.Context, r slog.Record) error {
	if r.Level >= slog.LevelError {
		return lr.stderr.Handle(ctx, r)
	}
	return lr.stdout.Handle(ctx, r)
}

func (lr *levelRouter) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &levelRouter{
		stdout: lr.stdout.WithAttrs(attrs),
		stderr: lr.stderr.WithAttrs(attrs),
	}
}

func (lr *levelRouter) WithGroup(name string) slog.Handler {
	return &levelRouter{
		stdout: lr.stdout.WithGroup(name),
		stderr: lr.stderr.WithGroup(name),
	}
}

// setupLogger configures structured logging. For serve, INFO/WARN go to
// stdout and ERROR goes to stderr. stdout is the MCP transport, so mcp sends
// every level to stderr. chat owns the terminal and only logs to the file.
// If logPath is non-empty, all levels are also written to that file.
// Returns a cleanup function that closes the log file (if opened).
func setupLogger(logPath, command string) (func(), error) {
	opts := &slog.HandlerOptions{Level: slog.LevelInfo}

	var cleanup func()

	stdoutW := io.Writer(os.Stdout)
	stderrW := io.Writer(os.Stderr)
	switch command {
	case cmdMCP:
		stdoutW = os.Stderr
	case cmdChat:
		stdoutW, stderrW = io.Discard, io.Discard
	}

	if logPath != "" {
		f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, fmt.Errorf("opening log file: %w", err)
		}
		cleanup = func() { f.Close() }
		stdoutW = io.MultiWriter(stdoutW, f)
		stderrW = io.MultiWriter(stderrW, f)
	}

	handler := &levelRouter{
		stdout: slog.NewTextHandler(stdoutW, opts),
		stderr: slog.NewTextHandler(stderrW, opts),
	}
	slog.SetDefault(slog.New(handler))
	return cleanup, nil
}

func main() {
	fs := flag.NewFlagSet("garderoba", flag.ContinueOnError)

	var configPath string
	fs.StringVar(&configPath, "config", "garderoba.yaml", "")
	fs.StringVar(&configPath, "c", "garderoba.yaml", "")

	var dbPath string
	fs.StringVar(&dbPath, "db", "", "")
	fs.StringVar(&dbPath, "d", "", "")

	var addr string
	fs.StringVar(&addr, "addr", "", "")
	fs.StringVar(&addr, "a", "", "")

	var owner string
	fs.StringVar(&owner, "user", "", "")
	fs.StringVar(&owner, "u", "", "")

	var logPath string
	fs.StringVar(&logPath, "log", "", "")
	fs.StringVar(&logPath, "l", "", "")

	fs.Usage = func() {
		fmt.Fprint(os.Stdout, `Usage: garderoba [flags] [serve|mcp|chat]

Commands:
  serve                   run the HTTP API (default)
  mcp                     run the MCP server on stdio
  chat                    chat with the outfit assistant in the terminal
  version                 print the version and exit

Flags:
  -c, -config <path>      YAML config file, created on first run (default: garderoba.yaml)
  -d, -db <path>          SQLite database path (default: garderoba.sqlite3)
  -a, -addr <host:port>   listen address (default: :8080)
  -u, -user <name>        owner username on first run (default: Owner)
  -l, -log <path>         log file path (default: no file, stdout/stderr only)
  -h, -help               show this help and exit
`)
	}

	if err := fs.Parse(os.Args[1:]); err != nil {
		if err == flag.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	command := cmdServe
	switch fs.NArg() {
	case 0:
	case 1:
		command = fs.Arg(0)
	default:
		fmt.Fprintf(os.Stderr, "unexpected argument: %s\n", fs.Arg(1))
		fs.Usage()
		os.Exit(1)
	}
	switch command {
	case cmdServe, cmdMCP, cmdChat:
	case "version":
		fmt.Printf("garderoba v%s\n", Version)
		os.Exit(0)
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n", command)
		fs.Usage()
		os.Exit(1)
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	// Flags override the file.
	if dbPath != "" {
		cfg.Database = dbPath
	}
	if addr != "" {
		cfg.Listen = addr
	}
	if owner != "" {
		cfg.Owner = owner
	}
	if logPath != "" {
		cfg.LogFile = logPath
	}

	closeLog, err := setupLogger(cfg.LogFile, command)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	if closeLog != nil {
		defer closeLog()
	}

	if err := run(command, cfg); err != nil {
		slog.Error("exiting", "command", command, "error", err)
		if closeLog != nil {
			closeLog()
		}
		os.Exit(1)
	}
}

func run(command string, cfg *config.Config) error {
	loc, err := cfg.Location()
	if err != nil {
		return err
	}

	// Check if DB exists, auto-init if not.
	if _, err := os.Stat(cfg.Database); os.IsNotExist(err) {
		database, password, err := initDatabase(cfg.Database, cfg.Owner)
		if err != nil {
			return fmt.Errorf("initializing database: %w", err)
		}
		database.Close()

		// stdout belongs to the MCP transport.
		out := io.Writer(os.Stdout)
		if command == cmdMCP {
			out = os.Stderr
		}
		printInitResult(out, cfg.Database, cfg.Owner, password)
	}

	database, err := db.Open(cfg.Database)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Ensure schema exists (idempotent).
	if err := db.EnsureSchema(database); err != nil {
		return fmt.Errorf("ensuring database schema: %w", err)
	}

	slog.Info("database ready", "path", cfg.Database)

	svc := wardrobe.New(database, wardrobe.Options{
		Location:     loc,
		UpcomingDays: cfg.UpcomingDays,
		CalendarName: cfg.CalendarName,
		ColorSeason:  cfg.ColorSeason,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	switch command {
	case cmdMCP:
		slog.Info("mcp server started", "version", Version)
		return server.ServeStdio(mcptools.NewServer(svc, Version))
	case cmdChat:
		return tui.Run(ctx, assistant.New(svc, assistant.DefaultHistory))
	default:
		return serve(ctx, svc, database, cfg.Listen)
	}
}

func serve(ctx context.Context, svc *wardrobe.Service, database *sql.DB, addr string) error {
	// Load JWT secret from database (auto-generated on first run).
	jwtSecret, err := store.GetJWTSecret(ctx, database)
	if err != nil {
		return fmt.Errorf("getting JWT secret: %w", err)
	}

	srv := &http.Server{
		Addr:              addr,
		Handler:           api.LoggingMiddleware(api.NewRouter(svc, jwtSecret)),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	// Graceful shutdown on SIGINT/SIGTERM.
	go func() {
		<-ctx.Done()
		slog.Info("shutdown signal received")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("server forced to shutdown", "error", err)
		}
	}()

	slog.Info("server started", "addr", addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server error: %w", err)
	}

	slog.Info("server stopped, closing database")
	return nil
}

// initDatabase creates a new database, ensures the schema, and creates the owner account.
func initDatabase(path, username string) (*sql.DB, string, error) {
	database, err := db.Open(path)
	if err != nil {
		return nil, "", fmt.Errorf("opening database: %w", err)
	}

	fail := func(what string, err error) (*sql.DB, string, error) {
		database.Close()
		os.Remove(path)
		return nil, "", fmt.Errorf("%s: %w", what, err)
	}

	if err := db.EnsureSchema(database); err != nil {
		return fail("ensuring schema", err)
	}

	password, err := generatePassword(16)
	if err != nil {
		return fail("generating password", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fail("hashing password", err)
	}

	if _, err := store.CreateUser(context.Background(), database, username, string(hash)); err != nil {
		return fail("creating owner account", err)
	}

	return database, password, nil
}

// printInitResult prints the database initialization result.
func printInitResult(w io.Writer, dbPath, username, password string) {
	fmt.Fprintf(w, "Database created: %s\n", dbPath)
	fmt.Fprintln(w, "Schema initialized.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Owner account created:")
	fmt.Fprintf(w, "  Username: %s\n", username)
	fmt.Fprintf(w, "  Password: %s\n", password)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Save this password, it cannot be recovered.")
	fmt.Fprintln(w, "You can change it after logging in.")
	fmt.Fprintln(w)
}

// generatePassword creates a random password of the given length.
func generatePassword(length int) (string, error) {
	const charset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789!@#$%&*"
	result := make([]byte, length)
	for i := range result {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(charset))))
		if err != nil {
			return "", err
		}
		result[i] = charset[n.Int64()]
	}
	return string(result), nil
}
