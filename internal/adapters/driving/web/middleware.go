package web

import (
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/custodia-labs/productsearch/internal/logger"
)

// modelViewerSrc is the model-viewer web component bundle.
const modelViewerSrc = "https://unpkg.com/@google/model-viewer/dist/model-viewer.min.js"

// contentSecurityPolicy allows the model-viewer bundle and remote models.
const contentSecurityPolicy = "default-src 'self'; " +
	"script-src 'self' https://unpkg.com; " +
	"style-src 'self' 'unsafe-inline'; " +
	"img-src 'self' data: blob: https:; " +
	"connect-src 'self' blob: https: http:; " +
	"frame-ancestors 'none'"

// SecurityHeaders adds security-related HTTP headers to all responses.
func SecurityHeaders() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			h := c.Response().Header()
			h.Set("X-Content-Type-Options", "nosniff")
			h.Set("X-Frame-Options", "DENY")
			h.Set("Content-Security-Policy", contentSecurityPolicy)
			h.Set("Referrer-Policy", "strict-origin-when-cross-origin")
			h.Set("Cache-Control", "no-store")
			return next(c)
		}
	}
}

// RequestLogger tags each request with an ID and logs it when done.
func RequestLogger() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id := c.Request().Header.Get(echo.HeaderXRequestID)
			if id == "" {
				id = uuid.NewString()
			}
			c.Response().Header().Set(echo.HeaderXRequestID, id)

			start := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}

			logger.Debug("%s %s %d %s [%s]",
				c.Request().Method, c.Request().URL.Path, c.Response().Status, time.Since(start), id)
			return nil
		}
	}
}
