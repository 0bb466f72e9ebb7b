package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"grama-vaani/internal/domain"
	"grama-vaani/internal/service"
)

const (
	sessionCookieName = "access_token"
	currentUserKey    = "current_user"
)

// AuthMiddleware validates the session cookie and resolves the account. The
// cookie carries a signed JWT whose subject is the user email; a missing,
// invalid or orphaned credential is a 401 with a challenge header.
func AuthMiddleware(jwtSvc *service.JWTService, userSvc *service.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(sessionCookieName)
		if err != nil || token == "" {
			unauthorized(c, "Not authenticated")
			return
		}

		email, err := jwtSvc.ParseToken(token)
		if err != nil {
			unauthorized(c, "Could not validate credentials")
			return
		}

		user, err := userSvc.GetByEmail(c.Request.Context(), email)
		if err != nil {
			unauthorized(c, "User not found")
			return
		}

		c.Set(currentUserKey, user)
		c.Next()
	}
}

func unauthorized(c *gin.Context, detail string) {
	c.Header("WWW-Authenticate", "Bearer")
	c.JSON(http.StatusUnauthorized, gin.H{"error": detail})
	c.Abort()
}

// CurrentUser returns the account resolved by AuthMiddleware.
func CurrentUser(c *gin.Context) (domain.User, bool) {
	val, ok := c.Get(currentUserKey)
	if !ok {
		return domain.User{}, false
	}
	user, ok := val.(domain.User)
	return user, ok
}
