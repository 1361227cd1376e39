package main

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/coreos/go-systemd/v22/daemon"
	"github.com/pkg/errors"

	"github.com/abihf/wordface/config"
	"github.com/abihf/wordface/display"
	"github.com/abihf/wordface/pipeline"
	"github.com/abihf/wordface/utils/logging"
)

var conf = config.Load()

func main() {
	logging.Setup(conf.LogFile, logging.Level())
	if err := serve(); err != nil {
		slog.Error("Exiting", "error", err)
		os.Exit(1)
	}
}

func serve() error {
	if isAlreadyRun(conf.PidFile) {
		return errors.New("already run")
	}

	if err := writeLockFile(conf.PidFile); err != nil {
		return errors.Wrap(err, "Can not write pid file")
	}
	defer os.Remove(conf.PidFile)

	ln, err := net.Listen("tcp", conf.Listen)
	if err != nil {
		return errors.Wrap(err, "Listen error")
	}

	screen := display.NewServer()
	srv := &http.Server{
		Handler:           screen.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		if err := srv.Serve(ln); err != nil && err != http.ErrServerClosed {
			slog.Error("Serve error", "error", err)
		}
	}()
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		srv.Shutdown(ctx)
	}()
	slog.Info("Viewer listening", "addr", ln.Addr().String())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	daemon.SdNotify(false, daemon.SdNotifyReady)
	err = pipeline.Run(ctx, conf, screen)
	daemon.SdNotify(false, daemon.SdNotifyStopping)
	if err != nil {
		return err
	}
	slog.Info("Shutting down")
	return nil
}

func isAlreadyRun(path string) bool {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return false
	}

	pidStr, err := os.ReadFile(path)
	if err != nil {
		slog.Warn("Can not read pid file", "error", err)
		return false
	}
	pid, err := strconv.Atoi(string(pidStr))
	if err != nil {
		slog.Warn("Invalid existing pid file", "error", err)
		return false
	}

	proc, err := os.FindProcess(pid)
	if err != nil {
		slog.Warn("Can not find current process", "error", err)
		return false
	}

	return proc.Signal(syscall.Signal(0)) == nil
}

func writeLockFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	fmt.Fprintf(f, "%d", os.Getpid())
	return f.Close()
}
