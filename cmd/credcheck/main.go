package main

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"
	red "github.com/redis/go-redis/v9"

	"github.com/arklim/credcheck/internal/core/domain"
	"github.com/arklim/credcheck/internal/core/port"
	"github.com/arklim/credcheck/internal/infra/config"
	"github.com/arklim/credcheck/internal/infra/logger"
	"github.com/arklim/credcheck/internal/infra/security"
	"github.com/arklim/credcheck/internal/infra/strutil"
	filerepo "github.com/arklim/credcheck/internal/repository/file"
	pgrepo "github.com/arklim/credcheck/internal/repository/postgres"
	redisrepo "github.com/arklim/credcheck/internal/repository/redis"
	"github.com/arklim/credcheck/internal/usecase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	zl, err := logger.New(cfg.App.Env)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer func() { _ = zl.Sync() }()

	ctx := context.Background()

	store, cleanup, err := newHistoryStore(ctx, cfg)
	if err != nil {
		log.Fatalf("failed to init history store: %v", err)
	}
	defer cleanup()

	fingerprinter, err := newFingerprinter(cfg)
	if err != nil {
		log.Fatalf("failed to init fingerprinter: %v", err)
	}

	svc := usecase.NewCredentialService(store, fingerprinter, usecase.CredentialParams{
		Locator:        cfg.History.Locator,
		MinLength:      cfg.Validator.MinLength,
		HistoryTimeout: cfg.Validator.HistoryTimeout,
	})

	fmt.Println("credcheck: recoverable credential validation walkthrough")

	for _, s := range []string{"Hello", "hello", "❤️ ❤️", ""} {
		capitalized, err := strutil.CapitalizeFirst(s)
		if err != nil {
			fmt.Printf("capitalize %q: %v\n", s, err)
			continue
		}
		fmt.Println(capitalized)
	}

	// the classic progression: too short, no special character, then valid.
	report(ctx, svc, fingerprinter, "caleb", "123!", 20210225)
	report(ctx, svc, fingerprinter, "caleb", "1234567", 20210225)
	report(ctx, svc, fingerprinter, "caleb", "1234567!", 20210225)
}

func report(ctx context.Context, svc *usecase.CredentialService, fingerprinter port.Fingerprinter, username, password string, salt uint64) {
	cred, err := svc.Create(ctx, username, password, salt)

	var vErr *domain.ValidationError
	var hErr *domain.HistoryUnavailableError
	switch {
	case errors.As(err, &vErr):
		fmt.Printf("rejected %q: %s\n", password, vErr.Message)
	case errors.As(err, &hErr):
		fmt.Printf("cannot validate %q right now: %v\n", password, hErr)
	case err != nil:
		fmt.Printf("validation failed for %q: %v\n", password, err)
	default:
		fp, fpErr := fingerprinter.Fingerprint(cred)
		if fpErr != nil {
			fmt.Printf("accepted %q but could not render fingerprint: %v\n", password, fpErr)
			return
		}
		fmt.Printf("accepted %q (strength %d/4), fingerprint %s\n",
			password, svc.EstimateStrength(username, password), fp.Hex())
	}
}

func newHistoryStore(ctx context.Context, cfg *config.AppConfig) (port.HistoryStore, func(), error) {
	switch cfg.History.Backend {
	case "file":
		return filerepo.NewHistoryStore(), func() {}, nil
	case "redis":
		client := red.NewClient(&red.Options{
			Addr:     fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port),
			DB:       cfg.Redis.DB,
			Password: cfg.Redis.Password,
		})
		return redisrepo.NewHistoryStore(client, cfg.Redis.KeyPrefix), func() { _ = client.Close() }, nil
	case "postgres":
		pool, err := pgxpool.New(ctx, cfg.Postgres.DSN())
		if err != nil {
			return nil, nil, fmt.Errorf("create pgx pool: %w", err)
		}
		return pgrepo.NewHistoryStore(pool), pool.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown history backend %q", cfg.History.Backend)
	}
}

func newFingerprinter(cfg *config.AppConfig) (port.Fingerprinter, error) {
	switch cfg.Fingerprint.Scheme {
	case "argon2id":
		return security.NewArgon2Fingerprinter(security.Argon2Config{
			Memory:      cfg.Fingerprint.Argon2.Memory,
			Iterations:  cfg.Fingerprint.Argon2.Iterations,
			Parallelism: cfg.Fingerprint.Argon2.Parallelism,
			KeyLength:   cfg.Fingerprint.Argon2.KeyLength,
		})
	case "legacy":
		return security.NewLegacyAdditiveFingerprinter(), nil
	default:
		return nil, fmt.Errorf("unknown fingerprint scheme %q", cfg.Fingerprint.Scheme)
	}
}
