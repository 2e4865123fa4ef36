package main

import (
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/thereayou/chat-lite/internal/handlers"
	"github.com/thereayou/chat-lite/internal/middleware"
	"github.com/thereayou/chat-lite/pkg/auth"
)

func APIEndpoints(
	r *gin.Engine,
	jwtMgr *auth.JWTManager,
	rdb *redis.Client,
	authH *handlers.AuthHandler,
	userH *handlers.UserHandler,
	friendH *handlers.FriendHandler,
	chatHTTP *handlers.HTTPChatHandler,
	wsH *handlers.WebSocketHandler,
) {
	// Auth endpoints
	authGroup := r.Group("/auth")
	{
		authGroup.POST("/register", authH.Register)
		authGroup.POST("/login", authH.Login)
		authGroup.POST("/logout", authH.Logout)
	}

	// API endpoints
	api := r.Group("/api/v1")
	api.Use(middleware.AuthMiddleware(jwtMgr, rdb))
	{
		api.GET("/users", userH.GetRoster)

		api.POST("/friends/:user", friendH.SendRequest)
		api.POST("/friends/:user/accept", friendH.Accept)

		api.GET("/messages", chatHTTP.GetPublicHistory)
		api.GET("/chats/:friend", chatHTTP.GetConversation)
		api.POST("/chats/:friend/files", chatHTTP.UploadFile)
	}

	// WebSocket: токен в query, т.к. браузерный ws не шлет заголовки
	wsGroup := r.Group("/ws")
	wsGroup.Use(middleware.WSAuthMiddleware(jwtMgr, rdb))
	{
		wsGroup.GET("", wsH.HandleWebSocket)
	}
}
