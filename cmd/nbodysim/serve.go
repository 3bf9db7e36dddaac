package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/san-kum/nbodysim/internal/physics"
	"github.com/san-kum/nbodysim/internal/storage"
	"github.com/san-kum/nbodysim/internal/stream"
)

func serveRun(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var traj *physics.Trajectory
	if len(args) == 1 {
		var err error
		traj, err = storage.New(dataDir).LoadTrajectory(args[0])
		if err != nil {
			return err
		}
		logger.Infof("replaying stored run %s", args[0])
	} else {
		cfg, err := loadScenario(cmd)
		if err != nil {
			return err
		}
		_, traj, _, err = simulate(ctx, cfg)
		if err != nil {
			return err
		}
		logger.Infof("replaying fresh %s run", cfg.Name)
	}

	srv := &http.Server{
		Addr: addr,
		Handler: stream.NewServer(traj, stream.Options{
			Stride:   stride,
			Interval: time.Duration(interval) * time.Millisecond,
		}, logger).Handler(),
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Infof("listening on %s/ws (%d steps)", addr, traj.Steps())
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		logger.Infof("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
