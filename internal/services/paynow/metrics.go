package paynow

import (
	"context"
	"time"
)

// NoopMetricsCollector is a no-op implementation of MetricsCollector
type NoopMetricsCollector struct{}

func (n *NoopMetricsCollector) RecordOperationDuration(string, time.Duration) {}
func (n *NoopMetricsCollector) RecordError(string, string)                    {}
func (n *NoopMetricsCollector) RecordCacheHit(string)                         {}
func (n *NoopMetricsCollector) RecordCacheMiss(string)                        {}

// NoopImageCache never stores anything.
type NoopImageCache struct{}

func (NoopImageCache) GetImage(context.Context, string) ([]byte, bool, error) { return nil, false, nil }
func (NoopImageCache) SetImage(context.Context, string, []byte) error         { return nil }
