// cmd/tools/config-check/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"sql-dashboard/internal/common/config"
	"sql-dashboard/internal/common/database"
)

// config-check verifies that the service can load its configuration and
// reach Postgres and Redis before a real deployment starts. Exits non-zero
// on the first hard failure.
func main() {
	configPath := flag.String("config", "", "Optional explicit path to a config file")
	timeout := flag.Duration("timeout", 5*time.Second, "Connection check timeout")
	flag.Parse()

	var cfg *config.Config
	var err error
	if *configPath != "" {
		cfg, err = config.LoadFromFile(*configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		fail("configuration load", err)
	}
	ok("configuration load")

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	pg, err := database.NewPostgres(cfg.Database.Postgres)
	if err != nil {
		fail("postgres client", err)
	}
	defer pg.Close()
	if err := pg.Ping(ctx); err != nil {
		fail("postgres ping", err)
	}
	ok(fmt.Sprintf("postgres ping (%s:%d/%s)", cfg.Database.Postgres.Host, cfg.Database.Postgres.Port, cfg.Database.Postgres.Database))

	redis, err := database.NewRedis(cfg.Database.Redis)
	if err != nil {
		fail("redis client", err)
	}
	defer redis.Close()
	if err := redis.Ping(ctx); err != nil {
		fail("redis ping", err)
	}
	ok(fmt.Sprintf("redis ping (%s)", cfg.Database.Redis.Address))

	if cfg.APIs.OpenAI.Enabled() {
		ok(fmt.Sprintf("openai key configured (model %s)", cfg.APIs.OpenAI.Model))
	} else {
		fmt.Println("WARN  openai key missing, translation will use rule tables only")
	}

	fmt.Println("All checks passed")
}

func ok(what string) {
	fmt.Printf("OK    %s\n", what)
}

func fail(what string, err error) {
	fmt.Fprintf(os.Stderr, "FAIL  %s: %v\n", what, err)
	os.Exit(1)
}
