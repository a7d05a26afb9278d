package middleware

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"boardbill-be-svc/pkg/utils"
)

// Roles carried in the token. Token issuance is handled by the auth
// collaborator; this service only verifies.
const (
	RoleAdmin   = "admin"
	RoleBoarder = "boarder"
)

// Context keys set by Authenticate
const (
	ContextUserID = "user_id"
	ContextRole   = "role"
)

// Authenticate verifies the bearer token and stores the caller's identity in
// the request context. Identity scoping downstream (a boarder only touching
// its own bills) relies on the user id set here.
func Authenticate(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			utils.UnauthorizedResponse(c, "Missing bearer token", nil)
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(header, "Bearer ")
		claims := jwt.MapClaims{}
		token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
			}
			return []byte(secret), nil
		}, jwt.WithValidMethods([]string{"HS256"}))
		if err != nil || !token.Valid {
			utils.UnauthorizedResponse(c, "Invalid token", err)
			c.Abort()
			return
		}

		userID, _ := claims["sub"].(string)
		role, _ := claims["role"].(string)
		if userID == "" {
			utils.UnauthorizedResponse(c, "Token has no subject", nil)
			c.Abort()
			return
		}

		c.Set(ContextUserID, userID)
		c.Set(ContextRole, role)
		c.Next()
	}
}

// RequireRole rejects callers whose token does not carry the given role
func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString(ContextRole) != role {
			utils.ForbiddenResponse(c, "Insufficient role", nil)
			c.Abort()
			return
		}
		c.Next()
	}
}
