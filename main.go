package main

import (
	"context"
	"famlist/broadcast"
	"famlist/controllers"
	"famlist/infra"
	"famlist/middlewares"
	"famlist/models"
	"famlist/repositories"
	"famlist/services"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func setupRouter(db *gorm.DB, hub *broadcast.Hub) *gin.Engine {

	userRepository := repositories.NewUserRepository(db)
	authService := services.NewAuthService(userRepository)
	authController := controllers.NewAuthController(authService)

	familyRepository := repositories.NewFamilyRepository(db)
	familyService := services.NewFamilyService(familyRepository, userRepository)
	familyController := controllers.NewFamilyController(familyService)

	itemRepository := repositories.NewItemRepository(db)
	itemService := services.NewItemService(itemRepository, hub)
	itemController := controllers.NewItemController(itemService)

	eventsController := controllers.NewEventsController(hub)

	identity := middlewares.IdentityMiddleware(authService)

	r := gin.Default()
	r.Use(cors.Default())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

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

	return r
}

func initDB() *gorm.DB {
	infra.Initialize()

	db := infra.SetupDB()

	if os.Getenv("AUTO_MIGRATE") == "true" {
		if err := db.AutoMigrate(&models.User{}, &models.Family{}, &models.Item{}); err != nil {
			panic("Failed to migrate database")
		}
	}

	return db
}

func main() {
	db := initDB()
	hub := broadcast.NewHub()
	r := setupRouter(db, hub)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	srv := &http.Server{
		Addr:        ":" + port,
		Handler:     r,
		ReadTimeout: 15 * time.Second,
		// イベントストリームは開きっぱなしなのでWriteTimeoutは設定しない
		IdleTimeout: 60 * time.Second,
	}

	go func() {
		log.Printf("Starting server on port %s", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	// 購読チャネルを閉じて全ストリームを終了させる
	hub.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}
	log.Println("Server exited")
}
