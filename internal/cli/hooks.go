package cli

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/votecloud/votecloud/pkg/observability"
)

// logHooks reports renders, cache traffic and HTTP requests to the logger.
type logHooks struct {
	logger *log.Logger
}

// registerLogHooks installs logHooks for every hook category.
func registerLogHooks(l *log.Logger) {
	h := &logHooks{logger: l}
	observability.SetRenderHooks(h)
	observability.SetCacheHooks(h)
	observability.SetHTTPHooks(h)
}

func (h *logHooks) OnRenderStart(ctx context.Context, labels int) {
	h.logger.Debug("render started", "labels", labels)
}

func (h *logHooks) OnRenderComplete(ctx context.Context, labels, placed, dropped int, d time.Duration, err error) {
	if err != nil {
		h.logger.Error("render failed", "labels", labels, "error", err)
		return
	}
	if dropped > 0 {
		h.logger.Warn("labels dropped", "labels", labels, "placed", placed, "dropped", dropped)
	}
}

func (h *logHooks) OnCacheHit(ctx context.Context, key string) {
	h.logger.Debug("cache hit", "key", key)
}

func (h *logHooks) OnCacheMiss(ctx context.Context, key string) {
	h.logger.Debug("cache miss", "key", key)
}

func (h *logHooks) OnCacheSet(ctx context.Context, key string, size int) {
	h.logger.Debug("cache set", "key", key, "bytes", size)
}

func (h *logHooks) OnRequest(ctx context.Context, method, path string) {}

func (h *logHooks) OnResponse(ctx context.Context, method, path string, status int, d time.Duration) {
	if status >= 500 {
		h.logger.Error("request failed", "method", method, "path", path, "status", status)
	}
}
