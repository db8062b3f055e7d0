package middleware

import (
	"net/http"
	"strings"

	"github.com/go-chi/cors"
	"github.com/mrqz-remodeling/console-api/internal/config"
	"go.uber.org/zap"
)

// CORS returns the CORS middleware for the console front end
func CORS(cfg *config.CORSConfig, environment string, logger *zap.Logger) func(http.Handler) http.Handler {
	options := cors.Options{
		AllowedMethods:   cfg.AllowedMethods,
		AllowedHeaders:   cfg.AllowedHeaders,
		ExposedHeaders:   withDownloadHeaders(cfg.ExposedHeaders),
		AllowCredentials: cfg.AllowCredentials,
		MaxAge:           cfg.MaxAge,
	}

	if len(cfg.AllowedOrigins) > 0 {
		for _, origin := range cfg.AllowedOrigins {
			if origin == "*" {
				if !isDevelopment(environment) {
					logger.Warn("CORS configured with wildcard origin in non-development environment",
						zap.String("environment", environment))
				}
				options.AllowOriginFunc = func(r *http.Request, origin string) bool {
					return origin != ""
				}
				break
			}
		}

		if options.AllowOriginFunc == nil {
			options.AllowedOrigins = cfg.AllowedOrigins
			logger.Info("CORS configured with explicit origins",
				zap.Strings("origins", cfg.AllowedOrigins))
		}
	} else {
		// The console front end runs on its own dev server locally
		if isDevelopment(environment) {
			options.AllowOriginFunc = func(r *http.Request, origin string) bool {
				return origin != ""
			}
			logger.Info("CORS configured to allow all origins in development mode")
		} else {
			// empty AllowedOrigins would mean "*" to go-chi/cors
			options.AllowOriginFunc = func(r *http.Request, origin string) bool {
				return false
			}
			logger.Warn("CORS configured with no allowed origins - all cross-origin requests will be denied",
				zap.String("environment", environment))
		}
	}

	return cors.Handler(options)
}

func isDevelopment(environment string) bool {
	switch environment {
	case "", "development", "local", "test":
		return true
	}
	return false
}

// withDownloadHeaders exposes the headers the console reads when saving a
// quotation PDF or spreadsheet export.
func withDownloadHeaders(exposed []string) []string {
	out := append([]string(nil), exposed...)
	for _, h := range []string{"Content-Disposition", RequestIDHeader} {
		found := false
		for _, e := range out {
			if strings.EqualFold(e, h) {
				found = true
				break
			}
		}
		if !found {
			out = append(out, h)
		}
	}
	return out
}
