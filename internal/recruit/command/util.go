package command

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/heartbeatcoders/recruit/internal/recruit/app"
	"github.com/heartbeatcoders/recruit/internal/recruit/service"
	"github.com/heartbeatcoders/recruit/internal/recruit/store/drivers/sqlite"
	"github.com/heartbeatcoders/recruit/pkg/cryptox"
)

// openSeedService opens the configured database and wires a SeedService
// over it. The caller owns the returned store and must Close it on every
// exit path.
func openSeedService() (*service.SeedService, *sqlite.Store, error) {
	cfg := app.LoadConfig()

	dsn := fmt.Sprintf("file:%s?_busy_timeout=5000&_journal_mode=WAL", cfg.DatabaseFile)
	st, err := sqlite.NewStore(dsn)
	if err != nil {
		return nil, nil, fmt.Errorf("open database: %w", err)
	}

	if err := st.ApplyMigrations(); err != nil {
		_ = st.Close()
		return nil, nil, fmt.Errorf("apply migrations: %w", err)
	}

	seed := &service.SeedService{
		Store:    st,
		Hasher:   cryptox.NewHasher(cfg.BcryptCost),
		Location: cfg.Location(),
	}
	return seed, st, nil
}

// promptPassword reads a password from the terminal without echo, falling
// back to a plain line read when stdin is not a terminal (piped input).
func promptPassword(label string) (string, error) {
	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		fmt.Fprint(os.Stderr, label)
		raw, err := term.ReadPassword(fd)
		fmt.Fprintln(os.Stderr)
		if err != nil {
			return "", err
		}
		return string(raw), nil
	}

	var line string
	if _, err := fmt.Fscanln(os.Stdin, &line); err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func envOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
