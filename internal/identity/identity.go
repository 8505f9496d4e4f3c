package identity

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const contextKey = "examinee_id"

type Claims struct {
	jwt.RegisteredClaims
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// JWTService verifies HMAC-signed bearer tokens issued by the auth side of
// the platform.
type JWTService struct {
	secretKey []byte
}

func NewJWTService(jwtSecret string) *JWTService {
	return &JWTService{secretKey: []byte(jwtSecret)}
}

func (s *JWTService) VerifyToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(
		tokenString,
		&Claims{},
		func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return s.secretKey, nil
		},
	)
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token claims")
	}
	return claims, nil
}

// Middleware resolves the examinee from a Bearer token, falling back to the
// X-User-ID header set by the gateway. Requests with neither are rejected.
func Middleware(jwtService *JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if auth := c.GetHeader("Authorization"); strings.HasPrefix(auth, "Bearer ") {
			claims, err := jwtService.VerifyToken(strings.TrimPrefix(auth, "Bearer "))
			if err == nil && claims.ID != "" {
				c.Set(contextKey, claims.ID)
				c.Next()
				return
			}
		}
		if userID := c.GetHeader("X-User-ID"); userID != "" {
			c.Set(contextKey, userID)
			c.Next()
			return
		}
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "Authentication required",
			"code":  "MISSING_USER_ID",
		})
		c.Abort()
	}
}

// CurrentExaminee returns the examinee id, or "" when the request carried
// no identity. Callers decide whether that is fatal; at submission time it
// only skips the result write.
func CurrentExaminee(c *gin.Context) string {
	if id, ok := c.Get(contextKey); ok {
		return id.(string)
	}
	return c.GetHeader("X-User-ID")
}
