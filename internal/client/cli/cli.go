package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/iudanet/medsync/internal/client/iocli"
	"github.com/iudanet/medsync/internal/client/sync"
)

// PassphraseEnv переменная окружения с парольной фразой кэша
const PassphraseEnv = "MEDSYNC_PASSPHRASE"

// ErrUnknownCommand неизвестная команда
var ErrUnknownCommand = errors.New("unknown command")

// Passphrases источники парольной фразы кроме окружения и терминала
type Passphrases struct {
	FromFile string
	FromArgs string
}

type Cli struct {
	io          iocli.IO
	service     sync.Service
	passphrases Passphrases
}

func New(io iocli.IO, service sync.Service, passphrases Passphrases) *Cli {
	return &Cli{
		io:          io,
		service:     service,
		passphrases: passphrases,
	}
}

type command struct {
	run    func(c *Cli, ctx context.Context, args []string) error
	locked bool // требует разблокированного кэша
}

var commands = map[string]command{
	"queue":     {run: (*Cli).runQueue, locked: true},
	"sync":      {run: (*Cli).runSync, locked: true},
	"conflicts": {run: (*Cli).runConflicts, locked: true},
	"resolve":   {run: (*Cli).runResolve, locked: true},
	"show":      {run: (*Cli).runShow, locked: true},
	"list":      {run: (*Cli).runList, locked: true},
	"status":    {run: (*Cli).runStatus},
	"history":   {run: (*Cli).runHistory},
}

// Run выполняет команду. Команды, читающие или пишущие кэш,
// сначала запрашивают парольную фразу.
func (c *Cli) Run(ctx context.Context, name string, args []string) error {
	cmd, ok := commands[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownCommand, name)
	}

	if cmd.locked {
		if err := c.unlock(ctx); err != nil {
			return err
		}
	}

	return cmd.run(c, ctx, args)
}

func (c *Cli) unlock(ctx context.Context) error {
	passphrase, err := c.getPassphrase()
	if err != nil {
		return fmt.Errorf("failed to get passphrase: %w", err)
	}
	if err := c.service.Unlock(ctx, passphrase); err != nil {
		return fmt.Errorf("failed to unlock local cache: %w", err)
	}
	return nil
}

// getPassphrase retrieves the cache passphrase with priority:
// 1. Environment variable MEDSYNC_PASSPHRASE
// 2. File specified with -passphrase-file
// 3. Command-line parameter -passphrase
// 4. Interactive prompt (fallback)
func (c *Cli) getPassphrase() (string, error) {
	if env := os.Getenv(PassphraseEnv); env != "" {
		return env, nil
	}

	if c.passphrases.FromFile != "" {
		content, err := os.ReadFile(c.passphrases.FromFile)
		if err != nil {
			return "", fmt.Errorf("failed to read passphrase file: %w", err)
		}
		passphrase := strings.TrimSpace(string(content))
		if passphrase == "" {
			return "", fmt.Errorf("passphrase file is empty")
		}
		return passphrase, nil
	}

	if c.passphrases.FromArgs != "" {
		return c.passphrases.FromArgs, nil
	}

	passphrase, err := c.io.ReadPassword("Passphrase: ")
	if err != nil {
		return "", fmt.Errorf("failed to read passphrase from stdin: %w", err)
	}
	if passphrase == "" {
		return "", fmt.Errorf("passphrase cannot be empty")
	}
	return passphrase, nil
}

// newFlagSet создает набор флагов подкоманды, вывод ошибок идет в IO
func (c *Cli) newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(c.io)
	return fs
}

func PrintUsage(io iocli.IO) {
	io.Println("MedSync Client")
	io.Println()
	io.Println("Usage:")
	io.Println("  medsync [OPTIONS] COMMAND [ARGS]")
	io.Println()
	io.Println("Options:")
	io.Println("  -version                Show version information")
	io.Println("  -server URL             Server URL (default: http://localhost:8080)")
	io.Println("  -db PATH                Path to local database (default: medsync-client.db)")
	io.Println("  -token TOKEN            Access token (or MEDSYNC_TOKEN)")
	io.Println("  -passphrase VALUE       Cache passphrase (not recommended, use env var or file)")
	io.Println("  -passphrase-file PATH   Path to file containing the cache passphrase")
	io.Println("  -log-level LEVEL        debug, info, warn, error (default: warn)")
	io.Println()
	io.Println("Commands:")
	io.Println("  queue <create|update|delete> -type T [-id ID] [-data JSON | -file PATH]")
	io.Println("                          Queue a local change for the next sync")
	io.Println("  sync [-trigger T]       Push queued changes and pull server changes")
	io.Println("  conflicts [-remote]     List unresolved conflicts")
	io.Println("  resolve -id ID -strategy client_wins|server_wins|merge [-data JSON]")
	io.Println("                          Resolve a conflict")
	io.Println("  status                  Show outbox, conflicts and last sync time")
	io.Println("  list [-type T]          List cached entities")
	io.Println("  show -type T -id ID     Show a cached entity")
	io.Println("  history -type T -id ID  Show the server audit trail of an entity")
	io.Println()
	io.Println("Examples:")
	io.Println("  export MEDSYNC_TOKEN=$(medsync-server token --tenant clinic-1 --user nurse-7)")
	io.Println("  export " + PassphraseEnv + "='a long local passphrase'")
	io.Println(`  medsync queue create -type patient -data '{"name":"Jane Doe"}'`)
	io.Println("  medsync sync")
	io.Println("  medsync resolve -id 2f1e... -strategy server_wins")
}
