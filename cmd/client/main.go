package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/iudanet/medsync/internal/client/api"
	"github.com/iudanet/medsync/internal/client/cli"
	"github.com/iudanet/medsync/internal/client/iocli"
	"github.com/iudanet/medsync/internal/client/storage/boltdb"
	"github.com/iudanet/medsync/internal/client/sync"
	"github.com/iudanet/medsync/internal/config"
	"github.com/iudanet/medsync/internal/logging"
)

const tokenEnv = "MEDSYNC_TOKEN"

var (
	// Version information set via ldflags during build
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

func main() {
	// .env читается до флагов, чтобы MEDSYNC_TOKEN и MEDSYNC_PASSPHRASE можно было хранить в нем
	if err := config.LoadDotEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Глобальные флаги
	showVersion := flag.Bool("version", false, "Show version information")
	serverURL := flag.String("server", "http://localhost:8080", "Server URL")
	dbPath := flag.String("db", "medsync-client.db", "Path to local database")
	token := flag.String("token", os.Getenv(tokenEnv), "Access token (env "+tokenEnv+")")
	passphrase := flag.String("passphrase", "", "Cache passphrase (not recommended, use env var or file)")
	passphraseFile := flag.String("passphrase-file", "", "Path to file containing the cache passphrase")
	logLevel := flag.String("log-level", "warn", "Log level: debug, info, warn, error")
	logFile := flag.String("log-file", "", "Write logs to a rotated file instead of stderr")

	flag.Parse()

	// Show version and exit if requested
	if *showVersion {
		printVersion()
		os.Exit(0)
	}

	stdio := iocli.NewStdio()

	// Получаем команду
	args := flag.Args()
	if len(args) == 0 {
		cli.PrintUsage(stdio)
		os.Exit(1)
	}

	logger, logCloser, err := logging.New(logging.Options{
		Output:     os.Stderr,
		Level:      *logLevel,
		Format:     "text",
		File:       *logFile,
		MaxSizeMB:  10,
		MaxBackups: 3,
		MaxAgeDays: 30,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	os.Exit(run(logger, stdio, args, options{
		serverURL: *serverURL,
		dbPath:    *dbPath,
		token:     *token,
		passphrases: cli.Passphrases{
			FromFile: *passphraseFile,
			FromArgs: *passphrase,
		},
	}, logCloser.Close))
}

type options struct {
	passphrases cli.Passphrases
	serverURL   string
	dbPath      string
	token       string
}

// run возвращает код выхода; отдельная функция нужна, чтобы defer отработали до os.Exit
func run(logger *slog.Logger, stdio iocli.IO, args []string, opts options, closeLog func() error) int {
	defer func() {
		if err := closeLog(); err != nil {
			fmt.Fprintf(os.Stderr, "failed to close log: %v\n", err)
		}
	}()

	command := args[0]

	// Создаем контекст
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Открываем BoltDB storage
	boltStorage, err := boltdb.New(ctx, opts.dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open database: %v\n", err)
		return 1
	}
	defer func() {
		if err := boltStorage.Close(); err != nil {
			logger.Error("failed to close database", "error", err)
		}
	}()

	if opts.token == "" && needsServer(command) {
		fmt.Fprintf(os.Stderr, "Error: access token is required, use -token or %s\n", tokenEnv)
		return 1
	}

	// Создаем API клиент
	apiClient := api.NewClient(opts.serverURL, opts.token)
	service := sync.NewService(apiClient, boltStorage, logger)

	// Выполняем команду
	if err := cli.New(stdio, service, opts.passphrases).Run(ctx, command, args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if errors.Is(err, cli.ErrUnknownCommand) {
			cli.PrintUsage(stdio)
		}
		return 1
	}
	return 0
}

func needsServer(command string) bool {
	switch command {
	case "sync", "resolve", "history":
		return true
	}
	return false
}

func printVersion() {
	fmt.Printf("MedSync Client\n")
	fmt.Printf("Version:    %s\n", Version)
	fmt.Printf("Build Date: %s\n", BuildDate)
	fmt.Printf("Git Commit: %s\n", GitCommit)
}
