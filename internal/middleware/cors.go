package middleware

import (
	"slices"

	"github.com/Payphone-Digital/jobboard/config"
	"github.com/Payphone-Digital/jobboard/internal/constants"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// CORS allows the configured browser origins with credentials, so the
// refresh token cookie reaches the API. A "*" entry, or no
// entry at all, allows any origin.
func CORS(cfg config.CORSConfig) gin.HandlerFunc {
	corsConfig := cors.Config{
		AllowMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders: []string{
			"Origin",
			"Content-Type",
			"Accept",
			constants.HeaderAuthorization,
			constants.HeaderXRequestID,
			"X-Requested-With",
		},
		ExposeHeaders:    []string{constants.HeaderXRequestID, "X-RateLimit-Limit", "X-RateLimit-Remaining"},
		AllowCredentials: true,
		MaxAge:           cfg.MaxAge,
	}

	if len(cfg.AllowedOrigins) == 0 || slices.Contains(cfg.AllowedOrigins, "*") {
		corsConfig.AllowOriginFunc = func(string) bool { return true }
	} else {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	}

	return cors.New(corsConfig)
}
