package main

import (
	"context"
	"database/sql"
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/agendap83/rosterboard/internal/config"
	"github.com/agendap83/rosterboard/internal/domain"
	"github.com/agendap83/rosterboard/internal/repository"
	"github.com/agendap83/rosterboard/internal/seed"

	_ "github.com/jackc/pgx/v5/stdlib"
)

func main() {
	var op int

	flag.IntVar(&op, "op", 0, "operation (1: persons, 2: legend codes, 3: calendar days, 4: schedule cells, 5: everything)")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("unable to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	dbpool, err := sql.Open("pgx", cfg.Database.DSN)
	if err != nil {
		logger.Error("unable to create database pool", "error", err)
		return
	}
	defer dbpool.Close()

	dbpool.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	dbpool.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	dbpool.SetConnMaxIdleTime(time.Duration(cfg.Database.MaxIdleTime) * time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Database.ConnectTimeout)*time.Second)
	defer cancel()

	// sql.Open does not dial; ping to fail fast on a bad DSN
	if err := dbpool.PingContext(ctx); err != nil {
		logger.Error("unable to reach the database", "error", err)
		return
	}

	repo := repository.NewRepository(cfg, dbpool)

	today := time.Now()
	rng := domain.DateRange{
		From: today.AddDate(0, 0, -cfg.Seed.PastDays).Format("2006-01-02"),
		To:   today.AddDate(0, 0, cfg.Seed.NextDays).Format("2006-01-02"),
	}

	switch op {
	case 1:
		run(seed.SeedPersons(repo))
	case 2:
		run(seed.SeedLegend(repo))
	case 3:
		run(seed.SeedCalendar(repo, rng))
	case 4:
		run(seed.SeedScheduleCells(repo, rng, cfg.Grid.SourceTag))
	case 5:
		run(seed.SeedPersons(repo))
		run(seed.SeedLegend(repo))
		run(seed.SeedCalendar(repo, rng))
		run(seed.SeedScheduleCells(repo, rng, cfg.Grid.SourceTag))
	default:
		slog.Error("no operation given")
	}
}

func run(err error) {
	if err != nil {
		slog.Error("seed step failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
