package main

import (
	"context"
	"database/sql"
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/camp-decathlon/duty-scheduler/backend/internal/config"
	"github.com/camp-decathlon/duty-scheduler/backend/internal/repository"
	"github.com/camp-decathlon/duty-scheduler/backend/internal/seed"
	"github.com/camp-decathlon/duty-scheduler/backend/internal/utils"

	_ "github.com/jackc/pgx/v5/stdlib"
)

func main() {
	var op int
	var n int

	flag.IntVar(&op, "op", 0, "operation to run (1: insert random users, 2: insert camp data)")
	flag.IntVar(&n, "n", 5, "number of records to insert")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	dbpool, err := sql.Open("pgx", cfg.Database.DSN)
	if err != nil {
		logger.Error("failed to create database pool", "error", err)
		return
	}
	defer dbpool.Close()

	dbpool.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	dbpool.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	dbpool.SetConnMaxIdleTime(time.Duration(cfg.Database.MaxIdleTime) * time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Database.ConnectTimeout)*time.Second)
	defer cancel()

	// sql.Open does not connect, ping to fail fast on a bad DSN
	if err := dbpool.PingContext(ctx); err != nil {
		logger.Error("failed to connect to the database", "error", err)
		return
	}

	repo := repository.NewRepository(cfg, dbpool)

	switch op {
	case 0:
		slog.Error("no operation specified")
	case 1:
		if n <= 0 {
			slog.Error("number of users must be positive")
		} else {
			cnt := n
			for i := 0; i < n; i++ {
				user, err := utils.GenerateRandomUser(cfg.Seed.User.Password, cfg.Email.UserDomain)
				if err != nil {
					slog.Error("failed to generate random user", slog.String("error", err.Error()))
					continue
				}

				if err := repo.CreateUser(user); err != nil {
					slog.Error("failed to insert user", slog.String("error", err.Error()))
					continue
				}

				cnt--
			}

			slog.Info("users inserted", slog.Int("count", n-cnt))
		}
	case 2:
		seed.SeedCampData(repo)
	default:
		slog.Error("unknown operation")
	}
}
