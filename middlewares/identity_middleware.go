package middlewares

import (
	"errors"
	"famlist/services"
	"net/http"

	"github.com/gin-gonic/gin"
)

// IdentityMiddleware 申告されたユーザーIDを毎リクエスト検証してctxに載せる。
// トークンは発行しない。信頼された経路で動かす前提の簡易な本人確認
func IdentityMiddleware(authService services.IAuthService) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		userID := ctx.GetHeader("X-User-ID")
		if userID == "" {
			// EventSourceはヘッダを付けられないのでクエリも受け付ける
			userID = ctx.Query("userId")
		}

		user, err := authService.ResolveUser(userID)
		if err != nil {
			if errors.Is(err, services.ErrUnauthenticated) || errors.Is(err, services.ErrUnknownUser) {
				ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
				return
			}
			ctx.AbortWithStatus(http.StatusInternalServerError)
			return
		}

		ctx.Set("user", user)

		ctx.Next()
	}
}
