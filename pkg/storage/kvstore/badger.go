package kvstore

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dgraph-io/badger/v3"
	"github.com/prometheus/client_golang/prometheus"
)

// BadgerStore is a Store backed by Badger v3.
type BadgerStore struct {
	db     *badger.DB
	cfg    BadgerConfig
	logger *slog.Logger

	lastGCTime atomic.Int64 // Unix milliseconds

	metricsLSMSize      prometheus.Gauge
	metricsValueLogSize prometheus.Gauge
	metricsKeys         prometheus.Gauge
	metricsLastGCTime   prometheus.Gauge

	stopCh    chan struct{}
	wg        sync.WaitGroup
	closeOnce sync.Once
}

// OpenBadger opens a Badger store in cfg.Dir.
func OpenBadger(cfg Config, logger *slog.Logger) (*BadgerStore, error) {
	if cfg.Dir == "" && !cfg.Badger.InMemory {
		return nil, fmt.Errorf("badger: dir is required")
	}
	if logger == nil {
		logger = slog.Default()
	}

	bcfg := cfg.Badger
	opts := badger.DefaultOptions(cfg.Dir)
	if bcfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	}
	opts.Logger = &badgerLogger{logger: logger}
	if bcfg.CacheSize > 0 {
		opts.BlockCacheSize = bcfg.CacheSize
	}
	if bcfg.ValueLogFileSize > 0 {
		opts.ValueLogFileSize = bcfg.ValueLogFileSize
	}
	opts.SyncWrites = bcfg.SyncWrites

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("badger: open db: %w", err)
	}

	s := &BadgerStore{
		db:     db,
		cfg:    bcfg,
		logger: logger,
		stopCh: make(chan struct{}),
	}

	if !bcfg.InMemory {
		s.wg.Add(1)
		go s.gcLoop()
	}

	logger.Info("badger store opened",
		"dir", cfg.Dir,
		"in_memory", bcfg.InMemory,
		"gc_interval", bcfg.GCInterval)

	return s, nil
}

// SetItem stores value under key.
func (s *BadgerStore) SetItem(key, value string) error {
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(itemKey(key), []byte(value))
	})
}

// GetItem returns the value stored under key.
func (s *BadgerStore) GetItem(key string) (string, bool, error) {
	var value []byte

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(itemKey(key))
		if err != nil {
			return err
		}
		value, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return string(value), true, nil
}

// RemoveItem deletes key.
func (s *BadgerStore) RemoveItem(key string) error {
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(itemKey(key))
	})
}

// Clear deletes every item.
func (s *BadgerStore) Clear() error {
	return s.db.DropPrefix(itemPrefix)
}

// Keys returns the stored keys in byte order.
func (s *BadgerStore) Keys() ([]string, error) {
	keys := make([]string, 0)

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = itemPrefix
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			keys = append(keys, string(it.Item().Key()[len(itemPrefix):]))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return keys, nil
}

// GC runs value-log garbage collection until nothing is left to rewrite.
// It returns the number of rewritten log files.
func (s *BadgerStore) GC() (int, error) {
	start := time.Now()

	rewrites := 0
	for {
		err := s.db.RunValueLogGC(s.cfg.GCThreshold)
		if err != nil {
			if errors.Is(err, badger.ErrNoRewrite) || errors.Is(err, badger.ErrRejected) {
				break
			}
			return rewrites, fmt.Errorf("gc: %w", err)
		}
		rewrites++
	}

	s.lastGCTime.Store(time.Now().UnixMilli())

	s.logger.Debug("badger gc completed",
		"rewrites", rewrites,
		"elapsed", time.Since(start))

	return rewrites, nil
}

// Stats returns engine statistics.
func (s *BadgerStore) Stats() Stats {
	lsm, vlog := s.db.Size()
	keys, _ := s.Keys()

	return Stats{
		Engine:       EngineBadger,
		Keys:         len(keys),
		TotalSize:    lsm + vlog,
		LSMSize:      lsm,
		ValueLogSize: vlog,
		LastGCTime:   s.lastGCTime.Load(),
	}
}

// Close stops the background loops and closes the database.
func (s *BadgerStore) Close() error {
	var err error
	s.closeOnce.Do(func() {
		close(s.stopCh)
		s.wg.Wait()

		if cerr := s.db.Close(); cerr != nil {
			err = fmt.Errorf("badger: close db: %w", cerr)
			return
		}
		s.logger.Info("badger store closed")
	})
	return err
}

// RegisterMetrics registers the store gauges with registry and starts
// refreshing them.
func (s *BadgerStore) RegisterMetrics(registry prometheus.Registerer) *BadgerStore {
	s.metricsLSMSize = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "proxystore",
		Subsystem: "badger",
		Name:      "lsm_size_bytes",
		Help:      "Badger LSM tree size in bytes",
	})
	s.metricsValueLogSize = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "proxystore",
		Subsystem: "badger",
		Name:      "value_log_size_bytes",
		Help:      "Badger value log size in bytes",
	})
	s.metricsKeys = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "proxystore",
		Subsystem: "badger",
		Name:      "keys",
		Help:      "Number of items in the local store",
	})
	s.metricsLastGCTime = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "proxystore",
		Subsystem: "badger",
		Name:      "last_gc_timestamp_seconds",
		Help:      "Unix timestamp of the last value-log GC run",
	})

	registry.MustRegister(
		s.metricsLSMSize,
		s.metricsValueLogSize,
		s.metricsKeys,
		s.metricsLastGCTime,
	)

	s.updateMetrics()

	s.wg.Add(1)
	go s.metricsUpdateLoop()

	return s
}

func (s *BadgerStore) updateMetrics() {
	stats := s.Stats()
	s.metricsLSMSize.Set(float64(stats.LSMSize))
	s.metricsValueLogSize.Set(float64(stats.ValueLogSize))
	s.metricsKeys.Set(float64(stats.Keys))
	if stats.LastGCTime > 0 {
		s.metricsLastGCTime.Set(float64(stats.LastGCTime) / 1000.0)
	}
}

func (s *BadgerStore) metricsUpdateLoop() {
	defer s.wg.Done()

	ticker := time.NewTicker(15 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.updateMetrics()
		case <-s.stopCh:
			return
		}
	}
}

func (s *BadgerStore) gcLoop() {
	defer s.wg.Done()

	interval, err := time.ParseDuration(s.cfg.GCInterval)
	if err != nil || interval <= 0 {
		s.logger.Warn("invalid gc_interval, using default 10m", "gc_interval", s.cfg.GCInterval)
		interval = 10 * time.Minute
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if _, err := s.GC(); err != nil {
				s.logger.Error("auto gc failed", "error", err)
			}
		case <-s.stopCh:
			return
		}
	}
}

// badgerLogger adapts slog.Logger to Badger's Logger interface.
type badgerLogger struct {
	logger *slog.Logger
}

func (l *badgerLogger) Errorf(format string, args ...interface{}) {
	l.logger.Error(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Warningf(format string, args ...interface{}) {
	l.logger.Warn(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Infof(format string, args ...interface{}) {
	l.logger.Debug(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Debugf(format string, args ...interface{}) {
	l.logger.Debug(fmt.Sprintf(format, args...))
}
