package logs

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/grafana/loki-client-go/loki"
	promconfig "github.com/prometheus/common/config"
	slogloki "github.com/samber/slog-loki/v3"

	"github.com/Alijeyrad/hms_backend/config"
)

const lokiPushPath = "/loki/api/v1/push"

func newLokiHandler(cfg config.LokiConfig, level slog.Level) (slog.Handler, func(), error) {
	endpoint := strings.TrimRight(cfg.Endpoint, "/")
	if endpoint == "" {
		return nil, nil, fmt.Errorf("loki endpoint is empty")
	}
	if !strings.HasSuffix(endpoint, lokiPushPath) {
		endpoint += lokiPushPath
	}

	lc, err := loki.NewDefaultConfig(endpoint)
	if err != nil {
		return nil, nil, fmt.Errorf("loki config: %w", err)
	}
	if cfg.Username != "" {
		lc.Client.BasicAuth = &promconfig.BasicAuth{
			Username: cfg.Username,
			Password: promconfig.Secret(cfg.Password),
		}
	}

	client, err := loki.New(lc)
	if err != nil {
		return nil, nil, fmt.Errorf("loki client: %w", err)
	}

	h := slogloki.Option{Level: level, Client: client}.NewLokiHandler()
	return h, client.Stop, nil
}
