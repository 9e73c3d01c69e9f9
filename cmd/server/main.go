package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"locallens-server/config"
	"locallens-server/internal/handler"
	"locallens-server/internal/model"
	"locallens-server/internal/repository"
	"locallens-server/internal/service"
	dbPkg "locallens-server/pkg/db"
	"locallens-server/pkg/jwt"
	"locallens-server/pkg/logger"
	redisPkg "locallens-server/pkg/redis"
	"locallens-server/pkg/response"
	"locallens-server/pkg/websocket"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	// 1. 加载配置
	cfg := config.LoadConfig()

	// 2. 初始化日志系统
	log := logger.InitLogger(cfg.Log)
	defer log.Sync()

	log.Info("=== LocalLens服务启动 ===")
	log.Info("服务器配置信息",
		zap.String("port", cfg.Server.Port),
		zap.String("database_host", cfg.Database.Host),
		zap.Int("database_port", cfg.Database.Port),
		zap.String("database_name", cfg.Database.Database),
		zap.String("database_user", cfg.Database.Username),
		zap.Duration("jwt_expire_time", cfg.JWT.ExpireTime),
		zap.String("log_level", cfg.Log.Level),
		zap.Bool("invite_creator_only", cfg.Invite.CreatorOnly),
	)

	// 3. 初始化数据库连接
	if _, err := dbPkg.InitDB(cfg.Database); err != nil {
		log.Fatal("数据库连接失败", zap.Error(err))
	}
	defer func() {
		if err := dbPkg.CloseDB(); err != nil {
			log.Error("关闭数据库连接失败", zap.Error(err))
		}
	}()
	log.Info("数据库连接成功")

	// 3.1 自动迁移表结构
	if err := dbPkg.AutoMigrate(
		&model.User{},
		&model.FriendRequest{},
		&model.Friendship{},
		&model.FriendGroup{},
		&model.FriendGroupMember{},
		&model.Event{},
		&model.Category{},
		&model.EventCategory{},
		&model.EventInvitation{},
		&model.EventAttendance{},
		&model.Place{},
		&model.Review{},
	); err != nil {
		log.Fatal("自动迁移失败", zap.Error(err))
	}
	log.Info("自动迁移完成")

	// 3.2 初始化Redis（非致命：缓存/未读计数/在线状态降级为直查数据库）
	if err := redisPkg.InitRedis(cfg.Redis); err != nil {
		log.Warn("Redis连接失败，缓存与在线状态功能降级", zap.Error(err))
	} else {
		log.Info("Redis连接成功")
	}

	// 3.3 初始化业务服务
	db := dbPkg.GetDB()
	jwtSvc := jwt.NewJWTService(cfg.JWT)

	userRepo := repository.NewUserRepository(db)
	friendRepo := repository.NewFriendRepository(db)
	groupRepo := repository.NewGroupRepository(db)
	eventRepo := repository.NewEventRepository(db)
	invitationRepo := repository.NewInvitationRepository(db)
	attendanceRepo := repository.NewAttendanceRepository(db)
	placeRepo := repository.NewPlaceRepository(db)

	var invitePolicy service.InvitePolicy = service.CreatorOnlyPolicy
	if !cfg.Invite.CreatorOnly {
		invitePolicy = service.OpenInvitePolicy
	}

	userSvc := service.NewUserService(userRepo, jwtSvc)
	friendSvc := service.NewFriendService(friendRepo, userRepo)
	groupSvc := service.NewGroupService(groupRepo, userRepo)
	eventSvc := service.NewEventService(eventRepo, invitationRepo, attendanceRepo)
	invitationSvc := service.NewInvitationService(invitationRepo, eventRepo, attendanceRepo, userRepo, invitePolicy)
	attendanceSvc := service.NewAttendanceService(attendanceRepo, eventRepo, invitationRepo, userRepo)
	placeSvc := service.NewPlaceService(placeRepo, userRepo)

	userHandler := handler.NewUserHandler(userSvc)
	friendHandler := handler.NewFriendHandler(friendSvc)
	groupHandler := handler.NewGroupHandler(groupSvc)
	eventHandler := handler.NewEventHandler(eventSvc)
	invitationHandler := handler.NewInvitationHandler(invitationSvc, groupSvc)
	attendanceHandler := handler.NewAttendanceHandler(attendanceSvc)
	placeHandler := handler.NewPlaceHandler(placeSvc)

	// 4. 设置Gin模式
	if os.Getenv("GIN_MODE") == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	// 5. 创建Gin路由
	router := gin.New()

	// 注入jwt_config/ws_config到Gin context，供WebSocket使用
	router.Use(func(c *gin.Context) {
		c.Set("jwt_config", cfg.JWT)
		c.Set("ws_config", cfg.WebSocket)
		c.Next()
	})

	// 使用中间件
	router.Use(logger.LoggerMiddleware())      // 自定义日志中间件
	router.Use(logger.ErrorLoggerMiddleware()) // 错误日志中间件

	// 6. 设置基础路由
	setupBasicRoutes(router)

	v1 := router.Group("/api/v1")
	{
		// 6.1 用户路由
		users := v1.Group("/users")
		{
			// 公开接口（无需认证）
			users.POST("/register", userHandler.Register)
			users.POST("/login", userHandler.Login)

			// 需要认证的接口
			authUsers := users.Group("")
			authUsers.Use(jwtSvc.AuthMiddleware())
			{
				authUsers.GET("/profile", userHandler.GetProfile)
				authUsers.PUT("/profile", userHandler.UpdateProfile)
				authUsers.PUT("/location", userHandler.UpdateLocation)
				authUsers.GET("/:id/event-stats", attendanceHandler.GetUserEventStats)
			}
		}

		// 6.2 好友路由（需要认证）
		friends := v1.Group("/friends")
		friends.Use(jwtSvc.AuthMiddleware())
		{
			friends.GET("", friendHandler.ListFriends)                       // 好友列表
			friends.POST("/requests", friendHandler.SendRequest)             // 发送好友请求
			friends.GET("/requests", friendHandler.ListPendingRequests)      // 待处理请求（双向）
			friends.PUT("/requests/:id/accept", friendHandler.AcceptRequest) // 接受
			friends.PUT("/requests/:id/reject", friendHandler.RejectRequest) // 拒绝
			friends.DELETE("/requests/:id", friendHandler.CancelRequest)     // 撤回
		}

		// 6.3 好友分组路由（需要认证）
		groups := v1.Group("/groups")
		groups.Use(jwtSvc.AuthMiddleware())
		{
			groups.POST("", groupHandler.CreateGroup)
			groups.GET("", groupHandler.ListGroups)
			groups.GET("/:id/members", groupHandler.ListMembers)
			groups.POST("/:id/members", groupHandler.AddMember)
			groups.DELETE("/:id/members/:userId", groupHandler.RemoveMember)
		}

		// 6.4 活动路由（需要认证）
		events := v1.Group("/events")
		events.Use(jwtSvc.AuthMiddleware())
		{
			events.POST("", eventHandler.CreateEvent)
			events.GET("", eventHandler.ListEvents)
			events.GET("/:id", eventHandler.GetEvent)
			events.PUT("/:id", eventHandler.UpdateEvent)
			events.POST("/:id/invitations", invitationHandler.InviteUser)        // 邀请单个用户
			events.POST("/:id/invitations/group", invitationHandler.InviteGroup) // 按分组批量邀请
			events.PUT("/:id/attendance", attendanceHandler.SetAttendance)       // 出席状态
			events.GET("/:id/attendees", attendanceHandler.GetAttendingUsers)    // 参加者列表
		}

		// 6.5 通知路由（需要认证）
		notifications := v1.Group("/notifications")
		notifications.Use(jwtSvc.AuthMiddleware())
		{
			notifications.GET("", invitationHandler.ListNotifications)
			notifications.GET("/unseen/count", invitationHandler.GetUnseenCount)
			notifications.PUT("/seen", invitationHandler.MarkAllSeen)
			notifications.DELETE("/events/:eventId", invitationHandler.DeleteNotification)
		}

		// 6.6 地点与点评路由（需要认证）
		places := v1.Group("/places")
		places.Use(jwtSvc.AuthMiddleware())
		{
			places.POST("", placeHandler.CreatePlace)
			places.GET("", placeHandler.ListPlaces)
			places.POST("/:id/reviews", placeHandler.AddReview)
			places.GET("/:id/reviews", placeHandler.ListReviews)
		}
	}

	// WebSocket路由（在线状态与通知推送）
	router.GET("/ws", websocket.WsHandler)

	// 7. 创建HTTP服务器
	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// 8. 启动HTTP服务器
	go func() {
		log.Info("HTTP服务器启动", zap.String("port", cfg.Server.Port))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP服务器启动失败", zap.Error(err))
		}
	}()

	// 9. 优雅关闭
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("正在关闭服务器...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("HTTP服务器关闭失败", zap.Error(err))
	}

	log.Info("服务器已安全关闭")
}

// setupBasicRoutes 设置基础路由
func setupBasicRoutes(router *gin.Engine) {
	// 健康检查
	// 完整url为：http://localhost:8080/health
	router.GET("/health", func(c *gin.Context) {
		status := "ok"
		if err := dbPkg.HealthCheck(); err != nil {
			status = "db-down"
		}
		redisStatus := "ok"
		if err := redisPkg.HealthCheck(); err != nil {
			redisStatus = "down"
		}
		response.Success(c, gin.H{
			"status": status,
			"redis":  redisStatus,
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	// 根路径
	router.GET("/", func(c *gin.Context) {
		response.Success(c, gin.H{
			"message": "欢迎使用LocalLens",
			"version": "1.0.0",
		})
	})
}
