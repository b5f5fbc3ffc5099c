package controllers

import (
	"famlist/broadcast"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// 中継機器のアイドルタイムアウトより短くしておく
const heartbeatInterval = 25 * time.Second

type IEventsController interface {
	Stream(ctx *gin.Context)
}

type EventsController struct {
	hub *broadcast.Hub
}

func NewEventsController(hub *broadcast.Hub) IEventsController {
	return &EventsController{hub: hub}
}

// Stream SSEでファミリーの更新イベントを流し続ける。
// 終了条件はクライアント切断かサーバーシャットダウンのみ
func (c *EventsController) Stream(ctx *gin.Context) {
	user, ok := currentUser(ctx)
	if !ok {
		return
	}
	// FamilyRequiredの後なのでFamilyIDはnilでないはずだが念のため
	if user.FamilyID == nil {
		ctx.AbortWithStatus(http.StatusForbidden)
		return
	}

	events, cancel := c.hub.Subscribe(*user.FamilyID)
	defer cancel()

	ctx.Writer.Header().Set("Content-Type", "text/event-stream")
	ctx.Writer.Header().Set("Cache-Control", "no-cache")
	ctx.Writer.Header().Set("Connection", "keep-alive")
	ctx.Writer.Header().Set("X-Accel-Buffering", "no")
	ctx.Writer.Flush()

	heartbeat := time.NewTicker(heartbeatInterval)
	defer heartbeat.Stop()

	done := ctx.Request.Context().Done()

	ctx.Stream(func(w io.Writer) bool {
		select {
		case ev, open := <-events:
			if !open {
				// Hubに切り離されたかシャットダウン
				return false
			}
			ctx.SSEvent(ev.Kind, ev)
			return true
		case <-heartbeat.C:
			ctx.SSEvent("heartbeat", "ping")
			return true
		case <-done:
			return false
		}
	})
}
