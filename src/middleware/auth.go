package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// TokenCookie carries the librarian token for browser sessions.
const TokenCookie = "token"

// AuthMiddleware requires a valid HS256 token signed with secret, taken from
// the Authorization header or the token cookie. Browsers without one are sent
// to the login page; API clients get 401.
func AuthMiddleware(secret string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		tokenString, ok := bearerToken(ctx)
		if !ok {
			unauthorized(ctx, "Authorization header is required")
			return
		}

		// Verifies the JWT token; exp is checked by the parser
		claims := jwt.MapClaims{}
		token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
			return []byte(secret), nil
		}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
		if err != nil || !token.Valid {
			unauthorized(ctx, "Invalid token")
			return
		}

		ctx.Set("librarianId", claims["id"])
		ctx.Set("librarian", claims["sub"])
		ctx.Next()
	}
}

func bearerToken(ctx *gin.Context) (string, bool) {
	if authHeader := strings.TrimSpace(ctx.GetHeader("Authorization")); authHeader != "" {
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			return "", false
		}
		return parts[1], true
	}
	if cookie, err := ctx.Cookie(TokenCookie); err == nil && cookie != "" {
		return cookie, true
	}
	return "", false
}

func unauthorized(ctx *gin.Context, message string) {
	if ctx.NegotiateFormat(gin.MIMEHTML, gin.MIMEJSON) == gin.MIMEHTML {
		ctx.Redirect(http.StatusFound, "/login")
		ctx.Abort()
		return
	}
	ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": message})
}
