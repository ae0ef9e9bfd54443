package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/devwithnaveed/cineverse-api/internal/config"
	"github.com/devwithnaveed/cineverse-api/internal/handler"
	"github.com/devwithnaveed/cineverse-api/internal/middleware"
	"github.com/devwithnaveed/cineverse-api/internal/model"
	"github.com/devwithnaveed/cineverse-api/internal/repository"
	"github.com/devwithnaveed/cineverse-api/internal/router"
	"github.com/devwithnaveed/cineverse-api/internal/utils"
)

func main() {
	// 加载 .env 文件（如果存在）
	if err := godotenv.Load(); err != nil {
		log.Println("未找到 .env 文件，使用系统环境变量")
	}

	cfg := config.Load()

	// 初始化数据库
	db, err := repository.InitDB(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("数据库初始化失败: %v", err)
	}
	repos := repository.NewRepositories(db)

	// 初始化响应缓存
	utils.InitCache()

	// Redis 仅用于限流，未配置时限流中间件直接放行
	var rdb *redis.Client
	if cfg.RedisAddr != "" {
		rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Printf("Redis 连接失败，限流降级为放行: %v", err)
		}
		cancel()
	}
	limiter := middleware.NewRateLimiter(cfg.RateLimit, rdb)

	// 注册自定义校验规则
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("role", func(fl validator.FieldLevel) bool {
			return model.IsValidRole(fl.Field().String())
		})
	}

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS())
	r.Use(gzip.Gzip(gzip.DefaultCompression))
	r.Use(middleware.FlushCacheOnWrite())
	r.Use(limiter.Global())

	h, err := handler.NewHandler(repos, cfg)
	if err != nil {
		log.Fatalf("初始化失败: %v", err)
	}
	router.RegisterRoutes(r, h, limiter)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		log.Printf("服务启动: http://localhost:%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("服务启动失败: %v", err)
		}
	}()

	// 等待退出信号，优雅关闭
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("正在关闭服务...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("服务关闭失败: %v", err)
	}

	if rdb != nil {
		_ = rdb.Close()
	}

	log.Println("服务已退出")
}
