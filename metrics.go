package main

import (
	"net/http"

	"github.com/go-kit/kit/log"
	"github.com/go-kit/kit/log/level"
	"github.com/go-kit/kit/metrics"
	"github.com/go-kit/kit/metrics/discard"
	"github.com/go-kit/kit/metrics/prometheus"
	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Imap4Metrics struct {
	Client *ClientMetrics
}

type ClientMetrics struct {
	Commands metrics.Counter
	Failures metrics.Counter
}

func NewImap4Metrics(prometheusAddr string) *Imap4Metrics {

	m := &Imap4Metrics{}

	if prometheusAddr == "" {
		m.Client = &ClientMetrics{
			Commands: discard.NewCounter(),
			Failures: discard.NewCounter(),
		}
	} else {
		m.Client = &ClientMetrics{
			Commands: prometheus.NewCounterFrom(prom.CounterOpts{
				Namespace: "imap4",
				Subsystem: "client",
				Name:      "commands_total",
				Help:      "Number of commands issued",
			}, []string{"command"}),
			Failures: prometheus.NewCounterFrom(prom.CounterOpts{
				Namespace: "imap4",
				Subsystem: "client",
				Name:      "failures_total",
				Help:      "Number of commands that did not complete with OK",
			}, []string{"command"}),
		}
	}

	return m
}

func runPromHTTP(logger log.Logger, addr string) {

	if addr == "" {
		level.Debug(logger).Log("msg", "prometheus addr is empty, not exposing prometheus metrics")
		return
	}

	http.Handle("/metrics", promhttp.Handler())

	level.Info(logger).Log("msg", "prometheus handler listening", "addr", addr)
	if err := http.ListenAndServe(addr, nil); err != nil {
		level.Warn(logger).Log("msg", "failed to serve prometheus metrics", "err", err)
	}
}
