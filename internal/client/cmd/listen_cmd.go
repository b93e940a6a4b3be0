package cmd

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	advertiseHost string
	metricsAddr   string
)

var listenCmd = &cobra.Command{
	Use:   "listen",
	Short: "receive messages and files until interrupted",
	Long: `starts the message and file listeners and prints everything that arrives.
With --advertise the local identity is (re)registered in the user directory first.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signalContext()
		defer stop()

		if advertiseHost != "" {
			dir, err := openDirectory()
			if err != nil {
				return err
			}
			if err := dir.Register(ctx, cfg.Identity, advertiseHost, cfg.MessagePort); err != nil {
				return err
			}
			log.WithFields(logrus.Fields{
				"identity": cfg.Identity,
				"host":     advertiseHost,
				"port":     cfg.MessagePort,
			}).Info("Registered in directory")
		}

		node, err := newNode(cmd.OutOrStdout())
		if err != nil {
			return err
		}
		if err := node.Start(ctx); err != nil {
			return err
		}

		addr := cfg.MetricsAddr
		if cmd.Flags().Changed("metrics-addr") {
			addr = metricsAddr
		}
		if addr != "" {
			srv := serveMetrics(addr)
			defer func() {
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				_ = srv.Shutdown(shutdownCtx)
			}()
		}

		log.Info("Listening, press Ctrl+C to stop")
		<-ctx.Done()
		log.Info("Shutting down")
		return node.Stop()
	},
}

func serveMetrics(addr string) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Error("Metrics server failed")
		}
	}()
	log.WithField("addr", addr).Info("Serving metrics")
	return srv
}

func init() {
	listenCmd.Flags().StringVar(&advertiseHost, "advertise", "", "host other peers should dial; registers this identity in the directory")
	listenCmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address (PEERCHAT_METRICS_ADDR)")
}
