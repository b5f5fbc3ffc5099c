package controllers

import (
	"bytes"
	"encoding/json"
	"famlist/broadcast"
	"famlist/middlewares"
	"famlist/models"
	"famlist/repositories"
	"famlist/services"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// buildTestRouter main.setupRouterと同じ配線のテスト用ルーター
func buildTestRouter(t *testing.T) (*gin.Engine, *broadcast.Hub) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Family{}, &models.Item{}))

	hub := broadcast.NewHub()

	userRepository := repositories.NewUserRepository(db)
	authService := services.NewAuthService(userRepository)
	authController := NewAuthController(authService)

	familyService := services.NewFamilyService(repositories.NewFamilyRepository(db), userRepository)
	familyController := NewFamilyController(familyService)

	itemService := services.NewItemService(repositories.NewItemRepository(db), hub)
	itemController := NewItemController(itemService)

	eventsController := NewEventsController(hub)

	identity := middlewares.IdentityMiddleware(authService)

	r := gin.New()
	authRouter := r.Group("/auth")
	authRouterWithIdentity := r.Group("/auth", identity)
	familyRouter := r.Group("/families", identity)
	itemRouter := r.Group("/items", identity)
	eventsRouter := r.Group("/events", identity, middlewares.FamilyRequired())

	authRouter.POST("/signup", authController.Signup)
	authRouter.POST("/login", authController.Login)
	authRouterWithIdentity.GET("/me", authController.Me)

	familyRouter.POST("", familyController.Create)
	familyRouter.POST("/join", familyController.Join)
	familyRouter.POST("/leave", familyController.Leave)
	familyRouter.GET("/members", familyController.Members)

	itemRouter.GET("", itemController.FindAll)
	itemRouter.POST("", itemController.Create)
	itemRouter.PUT("/:id", itemController.Update)
	itemRouter.DELETE("/done", itemController.DeleteAllDone)
	itemRouter.DELETE("/:id", itemController.Delete)

	eventsRouter.GET("", eventsController.Stream)

	return r, hub
}

func doJSON(t *testing.T, r *gin.Engine, method string, path string, userID string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if userID != "" {
		req.Header.Set("X-User-ID", userID)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func dataField(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body struct {
		Data map[string]interface{} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body.Data
}

func signupUser(t *testing.T, r *gin.Engine, name string, email string) string {
	t.Helper()
	w := doJSON(t, r, http.MethodPost, "/auth/signup", "", gin.H{
		"name": name, "email": email, "password": "password123",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return dataField(t, w)["userId"].(string)
}
