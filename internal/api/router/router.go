package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/vanshsoma/PesuConnect/config"
	"github.com/vanshsoma/PesuConnect/internal/api/handler"
	"github.com/vanshsoma/PesuConnect/internal/api/middleware"
	"github.com/vanshsoma/PesuConnect/pkg/jwt"
	"github.com/vanshsoma/PesuConnect/pkg/redis"
)

// Setup 初始化并返回 Gin 路由引擎
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(1 << 20))

	// ── 健康检查 ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		// 认证模块（无需认证；登录注册做限流防爆破）
		auth := v1.Group("/auth")
		{
			auth.POST("/register", middleware.RateLimit(rdb, 10, time.Minute), h.Auth.Register)
			auth.POST("/login", middleware.RateLimit(rdb, 20, time.Minute), h.Auth.Login)
			auth.POST("/refresh", h.Auth.RefreshToken)
		}

		// 需要认证的路由
		authorized := v1.Group("")
		authorized.Use(middleware.JWTAuth(jwtMgr, rdb))
		{
			// 认证模块（需要认证）
			authorized.POST("/auth/logout", h.Auth.Logout)
			authorized.GET("/auth/me", h.Auth.Me)

			// 学生模块
			students := authorized.Group("/students")
			{
				students.PUT("/me", h.Student.UpdateMe)
				students.DELETE("/me", h.Student.DeleteMe)
				students.GET("/:id", h.Student.GetProfile)
			}

			// 项目模块
			projects := authorized.Group("/projects")
			{
				projects.GET("", h.Project.Search)
				projects.POST("", h.Project.Create)
				projects.GET("/mine", h.Project.ListMine)
				projects.GET("/:id", h.Project.Get)
				projects.PUT("/:id", h.Project.Update)
				projects.DELETE("/:id", h.Project.Delete)
				projects.GET("/:id/applications", h.Application.ListByProject)
			}

			// 申请模块
			applications := authorized.Group("/applications")
			{
				applications.POST("", h.Application.Create)
				applications.GET("/mine", h.Application.ListMine)
				applications.POST("/:id/accept", h.Application.Accept)
				applications.POST("/:id/reject", h.Application.Reject)
			}

			// 合同模块
			contracts := authorized.Group("/contracts")
			{
				contracts.GET("/active", h.Contract.ListActive)
				contracts.GET("/:id", h.Contract.Get)
				contracts.POST("/:id/complete", h.Contract.Complete)
				contracts.GET("/:id/payments", h.Payment.ListByContract)
			}

			// 评价模块
			reviews := authorized.Group("/reviews")
			{
				reviews.POST("", h.Review.Create)
				reviews.GET("/mine", h.Review.MyReviews)
			}

			// 支付记录模块
			authorized.POST("/payments", h.Payment.Create)

			// 技能模块
			skills := authorized.Group("/skills")
			{
				skills.GET("/mine", h.Skill.List)
				skills.POST("", h.Skill.Add)
				skills.PUT("/:id", h.Skill.UpdateProficiency)
				skills.DELETE("/:id", h.Skill.Remove)
			}

			// 导出模块
			export := authorized.Group("/export")
			{
				export.GET("/contracts", h.Export.ExportContracts)
				export.GET("/deadlines", h.Export.ExportDeadlines)
			}
		}
	}

	return r
}
