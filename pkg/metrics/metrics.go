// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package metrics exports morefs tree operations as prometheus metrics.
package metrics

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/walteh/morefs/pkg/morefs"
	"gitlab.com/tozd/go/errors"
)

const namespace = "morefs"

// BytesBuckets: 1KB to 1GB for tree sizes
var BytesBuckets = prometheus.ExponentialBuckets(1024, 10, 7)

// 📈 Collector is a morefs.Observer backed by its own prometheus registry
type Collector struct {
	registry *prometheus.Registry
	now      func() time.Time

	// EntriesTotal counts replicated entries by operation and entry type
	EntriesTotal *prometheus.CounterVec

	// BytesTotal counts copied file bytes by operation
	BytesTotal *prometheus.CounterVec

	// TreesTotal counts finished tree operations by operation and result
	TreesTotal *prometheus.CounterVec

	// TreeBytes tracks the size of successful tree operations
	TreeBytes *prometheus.HistogramVec

	// LastRunTimestamp records when the last tree operation finished
	LastRunTimestamp prometheus.Gauge
}

var _ morefs.Observer = (*Collector)(nil)

// 🏭 New creates a collector and registers its metrics
func New() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		now:      time.Now,
		EntriesTotal: newCounterVec(
			"entries_total",
			"Total number of entries replicated.",
			[]string{"operation", "type"},
		),
		BytesTotal: newCounterVec(
			"bytes_total",
			"Total file bytes copied.",
			[]string{"operation"},
		),
		TreesTotal: newCounterVec(
			"trees_total",
			"Total number of tree operations by result.",
			[]string{"operation", "result"},
		),
		TreeBytes: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "tree_bytes",
			Help:      "Bytes copied by successful tree operations.",
			Buckets:   BytesBuckets,
		}, []string{"operation"}),
		LastRunTimestamp: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_run_timestamp_seconds",
			Help:      "Unix time of the last finished tree operation.",
		}),
	}

	c.registry.MustRegister(c.EntriesTotal, c.BytesTotal, c.TreesTotal, c.TreeBytes, c.LastRunTimestamp)
	return c
}

func newCounterVec(name, help string, labels []string) *prometheus.CounterVec {
	return prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      name,
		Help:      help,
	}, labels)
}

// Registry exposes the collector's registry, e.g. for promhttp
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// EntryReplicated implements morefs.Observer
func (c *Collector) EntryReplicated(ctx context.Context, op morefs.Operation, entry morefs.Entry, target string, n int64) {
	c.EntriesTotal.WithLabelValues(op.String(), entry.Type.String()).Inc()
	if n > 0 {
		c.BytesTotal.WithLabelValues(op.String()).Add(float64(n))
	}
}

// TreeReplicated implements morefs.Observer
func (c *Collector) TreeReplicated(ctx context.Context, op morefs.Operation, from, to string, n int64, err error) {
	result := "success"
	if err != nil {
		result = "failure"
	} else {
		c.TreeBytes.WithLabelValues(op.String()).Observe(float64(n))
	}
	c.TreesTotal.WithLabelValues(op.String(), result).Inc()
	c.LastRunTimestamp.Set(float64(c.now().Unix()))
}

// 💾 WriteTextfile writes every metric in the text exposition format, for the node_exporter textfile
// collector. The file is written atomically.
func (c *Collector) WriteTextfile(ctx context.Context, path string) error {
	zerolog.Ctx(ctx).Debug().Str("path", path).Msg("writing metrics textfile")
	if err := prometheus.WriteToTextfile(path, c.registry); err != nil {
		return errors.Errorf("writing metrics to %s: %w", path, err)
	}
	return nil
}
