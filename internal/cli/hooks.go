package cli

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/cargocite/pkg/observability"
)

// logHooks reports registry traffic and manifest timings at debug level.
type logHooks struct {
	observability.NoopPipelineHooks
	logger *log.Logger
}

func (h logHooks) OnRequest(_ context.Context, method, host, path string) {
	h.logger.Debug("Registry request", "method", method, "host", host, "path", path)
}

func (h logHooks) OnResponse(_ context.Context, _, host, path string, status int, d time.Duration) {
	h.logger.Debug("Registry response", "host", host, "path", path, "status", status, "duration", d.Round(time.Millisecond))
}

func (h logHooks) OnError(_ context.Context, _, host, path string, err error) {
	h.logger.Debug("Registry request failed", "host", host, "path", path, "err", err)
}

func (h logHooks) OnManifestComplete(_ context.Context, path string, d time.Duration, err error) {
	if err != nil {
		return
	}
	h.logger.Debug("Processed manifest", "path", path, "duration", d.Round(time.Millisecond))
}

// registerHooks routes observability events to the CLI logger.
func (c *CLI) registerHooks() {
	h := logHooks{logger: c.Logger}
	observability.SetHTTPHooks(h)
	observability.SetPipelineHooks(h)
}
