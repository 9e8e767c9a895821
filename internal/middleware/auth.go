package middleware

import (
	"context"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/taskdeck/backend/repository"
	authUC "github.com/taskdeck/backend/usecase/auth"
)

// Header names the verifier injects for downstream handlers.
const (
	HeaderUserID   = "X-User-ID"
	HeaderUsername = "X-Username"
)

// Verifier validates session tokens and exposes two gate variants: APIAuth
// responds 401 on failure, PageAuth redirects to the login page. Both consult
// the revocation set, so logged-out tokens are rejected everywhere.
type Verifier struct {
	secret      string
	revocations repository.RevocationRepository
	logger      *zap.Logger
}

func NewVerifier(secret string, revocations repository.RevocationRepository, logger *zap.Logger) *Verifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Verifier{
		secret:      secret,
		revocations: revocations,
		logger:      logger,
	}
}

// APIAuth gates JSON routes: invalid or revoked tokens get 401.
func (v *Verifier) APIAuth(next fasthttp.RequestHandler) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		if !v.verify(ctx) {
			ctx.SetStatusCode(fasthttp.StatusUnauthorized)
			ctx.Response.Header.SetContentType("application/json")
			ctx.SetBodyString(`{"status":"error","code":"UNAUTHORIZED","error":"invalid or missing token"}`)
			return
		}
		next(ctx)
	}
}

// PageAuth gates page routes: invalid or revoked tokens redirect to /login.
func (v *Verifier) PageAuth(next fasthttp.RequestHandler) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		if !v.verify(ctx) {
			ctx.Redirect("/login", fasthttp.StatusFound)
			return
		}
		next(ctx)
	}
}

func (v *Verifier) verify(ctx *fasthttp.RequestCtx) bool {
	tokenString := extractToken(ctx)
	if tokenString == "" {
		return false
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(v.secret), nil
	})
	if err != nil || !token.Valid {
		v.logger.Warn("invalid session token", zap.Error(err))
		return false
	}

	if v.revocations != nil {
		checkCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		revoked, err := v.revocations.IsRevoked(checkCtx, authUC.TokenID(tokenString))
		if err != nil {
			v.logger.Error("revocation check failed", zap.Error(err))
			return false
		}
		if revoked {
			return false
		}
	}

	if claims, ok := token.Claims.(jwt.MapClaims); ok {
		if userID, ok := claims[authUC.ClaimUserID].(string); ok {
			ctx.Request.Header.Set(HeaderUserID, userID)
		}
		if username, ok := claims[authUC.ClaimUsername].(string); ok {
			ctx.Request.Header.Set(HeaderUsername, username)
		}
	}
	return true
}

// extractToken reads the raw Authorization header value; clients send the
// token bare, but a Bearer prefix is tolerated. Page navigations may carry the
// token as a query parameter instead.
func extractToken(ctx *fasthttp.RequestCtx) string {
	header := string(ctx.Request.Header.Peek("Authorization"))
	if header == "" {
		return string(ctx.QueryArgs().Peek("token"))
	}
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return header
}
