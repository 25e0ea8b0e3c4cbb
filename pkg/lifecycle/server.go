/*
 * Copyright 2025 Carver Automation Corporation.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package lifecycle wires an HTTP server and a background Service
// together behind the signal-driven start/stop idiom: SIGINT/SIGTERM
// triggers a bounded graceful shutdown of both.
package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
)

// ShutdownTimeout bounds how long RunServer waits for the HTTP server
// and the Service to stop before giving up.
const ShutdownTimeout = 10 * time.Second

// Service is a long-running background component with its own
// start/stop semantics (e.g. a retention-cleanup loop).
type Service interface {
	Start(context.Context) error
	Stop(context.Context) error
}

// ServerOptions configures RunServer.
type ServerOptions struct {
	ListenAddr  string
	ServiceName string
	Service     Service
	Handler     http.Handler
}

// RunServer starts opts.Service and an HTTP server on opts.ListenAddr,
// then blocks until SIGINT/SIGTERM, a fatal error from either
// component, or ctx cancellation, running a bounded graceful shutdown
// of both before returning.
func RunServer(ctx context.Context, opts *ServerOptions) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	httpServer := &http.Server{
		Addr:              opts.ListenAddr,
		Handler:           opts.Handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errChan := make(chan error, 2)

	go func() {
		if opts.Service == nil {
			return
		}

		if err := opts.Service.Start(ctx); err != nil {
			errChan <- fmt.Errorf("lifecycle: service %q start failed: %w", opts.ServiceName, err)
		}
	}()

	go func() {
		log.Printf("lifecycle: %s listening on %s", opts.ServiceName, opts.ListenAddr)

		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- fmt.Errorf("lifecycle: http server failed: %w", err)
		}
	}()

	return handleShutdown(ctx, cancel, httpServer, opts.Service, errChan)
}

func handleShutdown(
	ctx context.Context,
	cancel context.CancelFunc,
	httpServer *http.Server,
	svc Service,
	errChan chan error,
) error {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	select {
	case sig := <-sigChan:
		log.Printf("lifecycle: received signal %v, initiating shutdown", sig)
	case err := <-errChan:
		log.Printf("lifecycle: received error %v, initiating shutdown", err)
		cancel()

		return err
	case <-ctx.Done():
		log.Printf("lifecycle: context canceled, initiating shutdown")
		return ctx.Err()
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer shutdownCancel()

	cancel()

	stopErrs := make(chan error, 2)

	go func() {
		stopErrs <- httpServer.Shutdown(shutdownCtx)
	}()

	go func() {
		if svc == nil {
			stopErrs <- nil
			return
		}

		stopErrs <- svc.Stop(shutdownCtx)
	}()

	var firstErr error

	for i := 0; i < 2; i++ {
		if err := <-stopErrs; err != nil && firstErr == nil {
			firstErr = fmt.Errorf("lifecycle: shutdown error: %w", err)
		}
	}

	if shutdownCtx.Err() != nil {
		return fmt.Errorf("lifecycle: shutdown timed out after %v", ShutdownTimeout)
	}

	return firstErr
}
