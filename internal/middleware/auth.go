package middleware

import (
	"net/http"
	"strings"

	"github.com/1013vishalsharma/payment-api/internal/auth"
	"github.com/1013vishalsharma/payment-api/internal/domain"
	"github.com/1013vishalsharma/payment-api/pkg/logger"
	"github.com/1013vishalsharma/payment-api/pkg/response"
	"github.com/1013vishalsharma/payment-api/pkg/telemetry"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"
)

// principalKey is the gin context key the resolved principal is stored
// under for the rest of the request.
const principalKey = "auth.principal"

const bearerPrefix = "Bearer "

// Authentication gates protected routes. It extracts the bearer
// credential from the Authorization header, resolves it through the
// provider registry and stores the authenticated principal in the
// request context. Any failure aborts with 401; resolution is skipped
// when an earlier middleware already authenticated the request.
func Authentication(registry *auth.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, span := telemetry.StartSpan(c.Request.Context(), "middleware.authentication")
		defer span.End()
		c.Request = c.Request.WithContext(ctx)

		if _, ok := c.Get(principalKey); ok {
			c.Next()
			return
		}

		header := c.GetHeader("Authorization")
		if header == "" {
			span.SetStatus(codes.Error, "missing credential")
			response.AbortWithError(c, http.StatusUnauthorized, domain.ErrCredentialMissing.Error())
			return
		}

		raw := strings.TrimSpace(strings.TrimPrefix(header, bearerPrefix))
		principal, err := registry.Authenticate(ctx, auth.NewBearerPrincipal(raw))
		if err != nil {
			logger.Get().Warn("Authentication failed",
				zap.String("path", c.Request.URL.Path),
				zap.Error(err))
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			response.AbortWithError(c, http.StatusUnauthorized, err.Error())
			return
		}

		c.Set(principalKey, principal)
		c.Next()
	}
}

// CurrentUser returns the authenticated user stored by the gate.
// Handlers behind the gate can rely on it being present.
func CurrentUser(c *gin.Context) (*domain.User, bool) {
	value, ok := c.Get(principalKey)
	if !ok {
		return nil, false
	}
	principal, ok := value.(*auth.Principal)
	if !ok || !principal.Authenticated {
		return nil, false
	}
	return principal.User, true
}
