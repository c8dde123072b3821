package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/devsync89/jobportal/internal/config"
	"github.com/devsync89/jobportal/internal/db"
	"github.com/devsync89/jobportal/internal/notifications"
	"github.com/devsync89/jobportal/internal/observability"
	"github.com/devsync89/jobportal/internal/queue/worker"
	"github.com/devsync89/jobportal/internal/repo/postgres"
	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	cfg := config.Load()

	log := observability.NewLogger(cfg.Env)

	ctx, stop := signal.NotifyContext(
		context.Background(),
		os.Interrupt,
		syscall.SIGTERM,
	)

	defer stop()

	pool, err := db.NewPool(cfg.DBURL)

	if err != nil {
		log.Error("db connect failed", "err", err)
		os.Exit(1)
	}

	defer pool.Close()

	prom := observability.NewProm(prometheus.DefaultRegisterer)

	jobsRepo := postgres.NewJobsRepo(pool, prom)
	candidatesRepo := postgres.NewCandidatesRepo(pool, prom)
	interviewsRepo := postgres.NewInterviewsRepo(pool, prom)

	notifier := notifications.NewProtectedNotifier(
		notifications.NewLogNotifier(log),
		notifications.ProtectedNotifierConfig{},
	)

	executor := worker.NewExecutor(candidatesRepo, interviewsRepo, notifier, log)

	host, _ := os.Hostname()
	workerID := host + "-" + strconv.Itoa(os.Getpid())

	w := worker.New(worker.Config{
		WorkerID:     workerID,
		PollInterval: 500 * time.Millisecond,
		Concurrency:  4,
		LockTTL:      60 * time.Second,
	}, jobsRepo, candidatesRepo, interviewsRepo, executor, log)

	// liveness/readiness sidecar for the worker process
	healthSrv := &http.Server{
		Addr:              ":9091",
		Handler:           w.HealthHandler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		if err := healthSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("worker health server failed", "err", err)
		}
	}()

	log.Info("worker started", "worker_id", workerID)

	if err := w.Run(ctx); err != nil {
		log.Error("worker stopped with error", "err", err)
	}

	shutdownCtx, cancel := config.WithTimeout(5 * time.Second)
	defer cancel()

	_ = healthSrv.Shutdown(shutdownCtx)

	log.Info("worker shutdown complete")
}
