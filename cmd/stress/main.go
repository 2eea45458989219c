/*
 * NDMap - Multi-Dimensional Maps
 *
 * Copyright Flow Foundation
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *   http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/phuslu/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/pflag"
)

type config struct {
	maxLength     uint64
	keyLength     int
	dimensions    int
	codec         string
	separator     string
	checkInterval uint64
	duration      time.Duration
	metricsAddr   string
}

// parseLogLevel converts string log level to log.Level
func parseLogLevel(levelStr string) log.Level {
	switch strings.ToLower(levelStr) {
	case "trace":
		return log.TraceLevel
	case "debug":
		return log.DebugLevel
	case "info":
		return log.InfoLevel
	case "warn", "warning":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	default:
		return log.InfoLevel
	}
}

func updateStatus(ctx context.Context, logger *log.Logger, status *mapStatus) {
	ticker := time.NewTicker(3 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			status.log(logger)
		case <-ctx.Done():
			return
		}
	}
}

func serveMetrics(logger *log.Logger, addr string, reg *prometheus.Registry) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))

	server := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error().Err(err).Str("addr", addr).Msg("metrics server failed")
		}
	}()

	return server
}

func main() {

	var cfg config
	var seedHex string
	var logLevel string

	pflag.Uint64Var(&cfg.maxLength, "maxlen", 10_000, "max number of elements")
	pflag.IntVar(&cfg.keyLength, "keylen", 2, "max length of each generated key")
	pflag.IntVar(&cfg.dimensions, "dimensions", 3, "number of keys in each path")
	pflag.StringVar(&cfg.codec, "codec", "separator", "flattened key codec: separator, cbor or msgpack")
	pflag.StringVar(&cfg.separator, "separator", ":", "separator used by the separator codec")
	pflag.Uint64Var(&cfg.checkInterval, "check-interval", 100, "number of ops between full verifications")
	pflag.DurationVar(&cfg.duration, "duration", 0, "how long to run (default is until interrupted)")
	pflag.StringVar(&seedHex, "seed", "", "seed for prng in hex (default is Unix time)")
	pflag.StringVar(&logLevel, "log-level", "info", "log level: trace, debug, info, warn or error")
	pflag.StringVar(&cfg.metricsAddr, "metrics-addr", "", "serve prometheus metrics on this address (disabled if empty)")

	pflag.Parse()

	logger := &log.Logger{
		Level: parseLogLevel(logLevel),
		Writer: &log.ConsoleWriter{
			ColorOutput:    true,
			EndWithMessage: true,
			Writer:         os.Stderr,
		},
	}

	var seed int64
	if len(seedHex) != 0 {
		var err error
		seed, err = strconv.ParseInt(strings.ReplaceAll(seedHex, "0x", ""), 16, 64)
		if err != nil {
			logger.Fatal().Err(err).Str("seed", seedHex).Msg("failed to parse seed flag (hex string)")
		}
	}

	r = newRand(logger, seed)

	cfg.codec = strings.ToLower(cfg.codec)

	switch cfg.codec {
	case "separator", "cbor", "msgpack":
	default:
		logger.Error().Str("codec", cfg.codec).Msg(`please specify codec as "separator", "cbor" or "msgpack"`)
		os.Exit(2)
	}

	if cfg.keyLength < 1 {
		cfg.keyLength = 1
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if cfg.duration > 0 {
		ctx, cancel = context.WithTimeout(ctx, cfg.duration)
		defer cancel()
	}

	reg := prometheus.NewRegistry()
	metrics := newMetrics(reg)

	if cfg.metricsAddr != "" {
		server := serveMetrics(logger, cfg.metricsAddr, reg)
		defer server.Close()
	}

	status := newMapStatus()

	logger.Info().
		Int("dimensions", cfg.dimensions).
		Str("codec", cfg.codec).
		Uint64("maxlen", cfg.maxLength).
		Msg("starting multi-dimensional map stress test")

	go updateStatus(ctx, logger, status)

	err := testMaps(ctx, logger, cfg, status, metrics)

	status.log(logger)

	if err != nil {
		logger.Error().Err(err).Msg("stress test failed")
		os.Exit(1)
	}
}
