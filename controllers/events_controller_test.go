package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sseRecorder httptest.ResponseRecorderはCloseNotifyを実装していないため
type sseRecorder struct {
	*httptest.ResponseRecorder
	closed chan bool
}

func newSSERecorder() *sseRecorder {
	return &sseRecorder{ResponseRecorder: httptest.NewRecorder(), closed: make(chan bool, 1)}
}

func (r *sseRecorder) CloseNotify() <-chan bool { return r.closed }

// openStream SSE接続を開き、閉じる関数と終了待ちチャネルを返す
func openStream(t *testing.T, r *gin.Engine, userID string) (*sseRecorder, context.CancelFunc, chan struct{}) {
	t.Helper()
	// EventSourceはヘッダを付けられないのでクエリで認証する
	req := httptest.NewRequest(http.MethodGet, "/events?userId="+userID, nil)
	ctx, cancel := context.WithCancel(req.Context())
	req = req.WithContext(ctx)

	w := newSSERecorder()
	done := make(chan struct{})
	go func() {
		r.ServeHTTP(w, req)
		close(done)
	}()
	return w, cancel, done
}

func TestEventStreamRequiresFamily(t *testing.T) {
	r, _ := buildTestRouter(t)

	w := doJSON(t, r, http.MethodGet, "/events", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	carol := signupUser(t, r, "Carol", "carol@example.com")
	w = doJSON(t, r, http.MethodGet, "/events", carol, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestEventStreamFanOut(t *testing.T) {
	r, _ := buildTestRouter(t)

	alice := signupUser(t, r, "Alice", "alice@example.com")
	bob := signupUser(t, r, "Bob", "bob@example.com")

	w := doJSON(t, r, http.MethodPost, "/families", alice, gin.H{"name": "Smiths"})
	require.Equal(t, http.StatusCreated, w.Code)
	code := dataField(t, w)["code"].(string)
	w = doJSON(t, r, http.MethodPost, "/families/join", bob, gin.H{"code": code, "name": "smiths"})
	require.Equal(t, http.StatusOK, w.Code)

	aliceStream, cancelAlice, aliceDone := openStream(t, r, alice)
	bobStream, cancelBob, bobDone := openStream(t, r, bob)

	// 購読が確立するのを待つ
	time.Sleep(100 * time.Millisecond)

	// 作成者自身を含む全購読者が受け取る
	w = doJSON(t, r, http.MethodPost, "/items", alice, gin.H{"name": "Milk", "category": "Food"})
	require.Equal(t, http.StatusCreated, w.Code)

	time.Sleep(100 * time.Millisecond)
	cancelAlice()
	cancelBob()

	select {
	case <-aliceDone:
	case <-time.After(2 * time.Second):
		t.Fatal("alice stream did not terminate")
	}
	select {
	case <-bobDone:
	case <-time.After(2 * time.Second):
		t.Fatal("bob stream did not terminate")
	}

	assert.Equal(t, "text/event-stream", aliceStream.Header().Get("Content-Type"))
	assert.Contains(t, aliceStream.Body.String(), "added")
	assert.Contains(t, bobStream.Body.String(), "added")
}

func TestEventStreamEndsOnHubClose(t *testing.T) {
	r, hub := buildTestRouter(t)

	alice := signupUser(t, r, "Alice", "alice@example.com")
	w := doJSON(t, r, http.MethodPost, "/families", alice, gin.H{"name": "Smiths"})
	require.Equal(t, http.StatusCreated, w.Code)

	_, cancel, done := openStream(t, r, alice)
	defer cancel()

	time.Sleep(100 * time.Millisecond)

	// サーバーシャットダウン時はHubが全チャネルを閉じてストリームを終わらせる
	hub.Close()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("stream did not terminate after hub close")
	}
}
