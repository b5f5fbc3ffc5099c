package middlewares

import (
	"famlist/models"
	"famlist/services"
	"net/http"

	"github.com/gin-gonic/gin"
)

// FamilyRequired ファミリー所属が前提のルートに使う。
// IdentityMiddlewareの後に使用することを想定（ctxに"user"が設定されている必要がある）
func FamilyRequired() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		user, exists := ctx.Get("user")
		if !exists {
			ctx.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		userModel, ok := user.(*models.User)
		if !ok {
			ctx.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		if userModel.FamilyID == nil {
			ctx.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": services.ErrNotInFamily.Error()})
			return
		}

		ctx.Next()
	}
}
