package middleware

import (
	"net/http"

	userModel "merchant-directory-backend/internal/domains/user/model"
	userRepo "merchant-directory-backend/internal/domains/user/repository"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// AdminMiddleware rejects everything but admins. The role is read from
// the users table, not from token claims, so a demoted admin loses
// access as soon as the row changes.
func AdminMiddleware(users userRepo.RepositoryInterface) gin.HandlerFunc {
	return func(c *gin.Context) {
		v, exists := c.Get("user_id")
		if !exists {
			c.JSON(http.StatusForbidden, gin.H{
				"success": false,
				"error":   "Access denied: admin role required",
			})
			c.Abort()
			return
		}

		userID, ok := v.(uuid.UUID)
		if !ok {
			c.JSON(http.StatusForbidden, gin.H{
				"success": false,
				"error":   "Access denied: admin role required",
			})
			c.Abort()
			return
		}

		u, err := users.FindByID(c.Request.Context(), userID)
		if err != nil || u.UserType != userModel.UserTypeAdmin {
			c.JSON(http.StatusForbidden, gin.H{
				"success": false,
				"error":   "Access denied: admin role required",
			})
			c.Abort()
			return
		}

		c.Set("role", u.UserType)

		c.Next()
	}
}
