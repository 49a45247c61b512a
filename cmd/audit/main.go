package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/agendap83/rosterboard/internal/config"
	"github.com/agendap83/rosterboard/internal/domain"
	"github.com/agendap83/rosterboard/internal/repository"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// The audit worker drains the schedule-change queue and persists every
// committed batch, so schedule history survives the editing sessions.
func main() {
	/**********************************************
	 * logger
	 **********************************************/
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	/**********************************************
	 * configuration
	 **********************************************/
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("unable to load configuration", slog.String("error", err.Error()))
		return
	}

	/**********************************************
	 * database
	 **********************************************/
	dbpool, err := sql.Open("pgx", cfg.Database.DSN)
	if err != nil {
		logger.Error("unable to create database pool", "error", err)
		return
	}
	defer dbpool.Close()

	dbpool.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	dbpool.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	dbpool.SetConnMaxIdleTime(time.Duration(cfg.Database.MaxIdleTime) * time.Second)

	pingCtx, cancelPing := context.WithTimeout(context.Background(), time.Duration(cfg.Database.ConnectTimeout)*time.Second)
	defer cancelPing()

	if err := dbpool.PingContext(pingCtx); err != nil {
		logger.Error("unable to reach the database", "error", err)
		return
	}

	repo := repository.NewRepository(cfg, dbpool)

	/**********************************************
	 * rabbitmq
	 **********************************************/
	conn, err := amqp.Dial(cfg.RabbitMQ.DSN)
	if err != nil {
		logger.Error("unable to connect to rabbitmq", slog.String("error", err.Error()))
		return
	}
	defer conn.Close()

	ch, err := conn.Channel()
	if err != nil {
		logger.Error("unable to open a channel", slog.String("error", err.Error()))
		return
	}
	defer ch.Close()

	q, err := ch.QueueDeclare(
		domain.ScheduleEventsQueue, // queue name
		true,                       // durable
		false,                      // do not auto-delete while no consumer is attached
		false,                      // not exclusive
		false,                      // wait for the broker to confirm the declare
		nil,                        // no extra arguments
	)
	if err != nil {
		logger.Error("unable to declare the events queue", slog.String("error", err.Error()))
		return
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	msgs, err := ch.Consume(
		q.Name, // queue
		"",     // consumer tag assigned by the broker
		false,  // manual ack
		false,  // not exclusive
		false,  // no-local is unsupported by RabbitMQ, must stay false
		false,  // wait for the broker's response
		nil,    // no extra arguments
	)
	if err != nil {
		logger.Error("unable to consume messages", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	wg := sync.WaitGroup{}

	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-ctx.Done():
				return
			case msg := <-msgs:
				event := domain.ScheduleChangedEvent{}
				if err := json.Unmarshal(msg.Body, &event); err != nil {
					logger.Error("unable to decode change event", slog.String("error", err.Error()))
					_ = msg.Nack(false, false)
					continue
				}

				if err := repo.CreateAuditEntry(&event); err != nil {
					logger.Error("unable to persist audit entry", slog.String("error", err.Error()))
					_ = msg.Nack(false, true) // requeue, the database may be back later
					continue
				}

				logger.Info("audit entry recorded",
					"event", event.ID,
					"source", event.Source,
					"upserted", event.Upserted,
					"deleted", event.Deleted,
				)
				_ = msg.Ack(false)
			}
		}
	}()

	logger.Info("waiting for schedule events... (CTRL+C to quit)")
	<-sigChan

	slog.Info("shutting down audit worker...")
	cancel()
	wg.Wait()
	slog.Info("audit worker stopped")
}
