package httpapi

import (
	"net/http"
	"time"

	"github.com/Amaradona-max/football-serie-a/internal/platform/logging"
)

type RouterConfig struct {
	APIKey             string
	RateLimitRequests  int
	RateLimitWindow    time.Duration
	InternalJobToken   string
	CORSAllowedOrigins []string
}

func NewRouter(handler *Handler, metrics MetricsExporter, logger *logging.Logger, cfg RouterConfig) http.Handler {
	if logger == nil {
		logger = logging.Default()
	}

	mux := http.NewServeMux()
	registerSystemRoutes(mux, handler, metrics)
	registerDataRoutes(mux, handler, cfg.APIKey, NewKeyedLimiter(cfg.RateLimitRequests, cfg.RateLimitWindow))
	registerInternalJobRoutes(mux, handler, cfg.InternalJobToken)

	var observer HTTPObserver
	if metrics != nil {
		observer = metrics
	}

	return RequestTracing(
		RequestID(
			RequestLogging(logger,
				RequestMetrics(observer,
					CORS(cfg.CORSAllowedOrigins,
						recoverPanic(logger, mux))))))
}
