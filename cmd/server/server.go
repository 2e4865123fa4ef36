package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"
	"github.com/thereayou/chat-lite/internal/database"
	"github.com/thereayou/chat-lite/internal/friends"
	"github.com/thereayou/chat-lite/internal/handlers"
	"github.com/thereayou/chat-lite/internal/presence"
	"github.com/thereayou/chat-lite/internal/websocket"
	"github.com/thereayou/chat-lite/pkg/auth"
)

type Server struct {
	Router     *gin.Engine
	DB         *database.Database
	Redis      *redis.Client
	JWTManager *auth.JWTManager
	Hub        *websocket.Hub
	Tracker    *presence.Tracker
}

func NewServer() *Server {
	if err := godotenv.Load(".env.local"); err != nil {
		if err := godotenv.Load(); err != nil {
			log.Println(".env not found, using environment variables")
		}
	}

	dbConn := &database.Database{}
	if err := dbConn.Connect(); err != nil {
		log.Fatalf("Postgres connect failed: %v", err)
	}

	redisOpts, err := redis.ParseURL(os.Getenv("REDIS_URL"))
	if err != nil {
		log.Fatalf("invalid REDIS_URL: %v", err)
	}
	rdb := redis.NewClient(redisOpts)
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		log.Fatalf("Redis connect failed: %v", err)
	}

	jwtMgr := auth.NewJWTManager(
		os.Getenv("JWT_SECRET"),
		24*time.Hour,
	)

	tracker := presence.NewTracker(dbConn)
	engine := friends.NewEngine(dbConn)

	hub := websocket.NewHub(tracker)
	go hub.Run()

	authH := handlers.NewAuthHandler(dbConn, jwtMgr, rdb)
	userH := handlers.NewUserHandler(dbConn, engine, tracker)
	friendH := handlers.NewFriendHandler(engine)
	chatHTTP := handlers.NewHTTPChatHandler(dbConn)
	chatH := handlers.NewChatHandler(dbConn, hub)
	wsH := handlers.NewWebSocketHandler(hub, chatH)

	router := gin.Default()
	APIEndpoints(router, jwtMgr, rdb, authH, userH, friendH, chatHTTP, wsH)

	return &Server{
		Router:     router,
		DB:         dbConn,
		Redis:      rdb,
		JWTManager: jwtMgr,
		Hub:        hub,
		Tracker:    tracker,
	}
}

func (s *Server) Run() {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("Server starting on port %s", port)
	if err := s.Router.Run(":" + port); err != nil {
		log.Fatalf("Server run error: %v", err)
	}
}

func main() {
	NewServer().Run()
}
