package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"comercial/internal/apierror"
	"comercial/internal/authz"
	"comercial/internal/metrics"
	"comercial/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// JWTClaims are the custom claims embedded in every token.
type JWTClaims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Tipo   string `json:"typ"` // access | refresh
	jwt.RegisteredClaims
}

// PrincipalLoader rebuilds a principal with its current capabilities.
// service.AuthService implements it.
type PrincipalLoader interface {
	CargarPrincipal(ctx context.Context, usuarioID uuid.UUID) (*authz.Principal, error)
}

// Autenticar attaches a principal to the request context when a valid access
// token is present. It never rejects a request by itself: a missing or bad
// token leaves the request unauthenticated and RequirePermiso answers 401.
// Capabilities are loaded from the store on every request.
func Autenticar(secret string, loader PrincipalLoader) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			c.Next()
			return
		}

		tokenStr := strings.TrimPrefix(header, "Bearer ")
		claims := &JWTClaims{}
		token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid || claims.Tipo != "access" {
			c.Next()
			return
		}
		uid, err := uuid.Parse(claims.UserID)
		if err != nil {
			c.Next()
			return
		}

		p, err := loader.CargarPrincipal(c.Request.Context(), uid)
		switch {
		case errors.Is(err, service.ErrNoEncontrado):
			// deleted or deactivated since the token was issued
		case err != nil:
			log.Error().Err(err).Str("request_id", c.GetString(RequestIDKey)).Msg("failed to load principal")
			c.AbortWithStatusJSON(http.StatusInternalServerError, apierror.Interno(c.GetString(RequestIDKey)))
			return
		default:
			c.Request = c.Request.WithContext(authz.WithPrincipal(c.Request.Context(), p))
		}
		c.Next()
	}
}

// RequirePermiso lets the request through when the principal holds any of perms.
func RequirePermiso(m *metrics.Metrics, perms ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		err := authz.Autorizar(authz.FromContext(c.Request.Context()), perms...)
		switch {
		case errors.Is(err, authz.ErrNoAutenticado):
			m.IncrementDenegacion("no_autenticado")
			c.AbortWithStatusJSON(http.StatusUnauthorized, apierror.New("Autenticacion requerida"))
			return
		case errors.Is(err, authz.ErrSinPermiso):
			m.IncrementDenegacion("sin_permiso")
			c.AbortWithStatusJSON(http.StatusForbidden, apierror.New("Permisos insuficientes"))
			return
		}
		c.Next()
	}
}

// RequireAutenticado only demands a principal, with no capability check.
func RequireAutenticado(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		if authz.FromContext(c.Request.Context()) == nil {
			m.IncrementDenegacion("no_autenticado")
			c.AbortWithStatusJSON(http.StatusUnauthorized, apierror.New("Autenticacion requerida"))
			return
		}
		c.Next()
	}
}

// GetPrincipal is a helper to retrieve the principal from the Gin context.
func GetPrincipal(c *gin.Context) *authz.Principal {
	return authz.FromContext(c.Request.Context())
}
