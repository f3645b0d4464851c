package handler

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	"github.com/blogstack/backend/internal/config"
	"github.com/blogstack/backend/internal/db"
	"github.com/blogstack/backend/internal/media"
	"github.com/blogstack/backend/internal/metrics"
	"github.com/blogstack/backend/internal/model"
	"github.com/blogstack/backend/internal/service"
)

// Services bundles everything the HTTP layer depends on.
type Services struct {
	Auth          *service.AuthService
	Users         *service.UserService
	Blogs         *service.BlogService
	Comments      *service.CommentService
	Likes         *service.LikeService
	Follows       *service.FollowService
	Notifications *service.NotificationService
	Reports       *service.ReportService
	Admin         *service.AdminService
}

// NewRouter assembles the full route tree. Authentication is resolved once per
// request by AuthMiddleware; RequireAuth and RequireAuthority gate the
// protected groups.
func NewRouter(cfg config.Config, repo *db.Postgres, storage *media.Storage, svcs Services) *gin.Engine {
	if cfg.Server.Env == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(CORSMiddleware(strings.Split(cfg.Server.AllowedOrigins, ",")))
	r.Use(metrics.GinMiddleware())
	r.Use(AuthMiddleware(svcs.Auth))

	health := NewHealthHandler(repo)
	r.GET("/healthz", health.Healthz)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	r.Static(strings.TrimSuffix(media.PublicPrefix, "/"), storage.Dir())

	auth := NewAuthHandler(svcs.Auth)
	users := NewUserHandler(svcs.Users)
	blogs := NewBlogHandler(svcs.Blogs)
	comments := NewCommentHandler(svcs.Comments)
	likes := NewLikeHandler(svcs.Likes)
	follows := NewFollowHandler(svcs.Follows)
	notifications := NewNotificationHandler(svcs.Notifications)
	reports := NewReportHandler(svcs.Reports)
	admin := NewAdminHandler(svcs.Admin)

	api := r.Group("/api")

	// Credential endpoints get a tighter per-IP budget than the rest.
	authLimiter := NewRateLimiter(rate.Every(time.Second), 10, 10*time.Minute)
	authGroup := api.Group("/auth", authLimiter.Middleware())
	{
		authGroup.POST("/register", auth.Register)
		authGroup.POST("/login", auth.Login)
	}

	protected := api.Group("", RequireAuth())
	{
		protected.GET("/me", users.Me)
		protected.GET("/search", users.Search)
		protected.GET("/users/:id", users.Get)
		protected.GET("/users/:id/followers", follows.Followers)
		protected.GET("/users/:id/following", follows.Following)

		protected.GET("/blogs", blogs.List)
		protected.GET("/blogs/:id", blogs.Get)
		protected.GET("/blogs/:id/comments", comments.ListByBlog)
		protected.GET("/blogs/:id/likes", likes.Count)
		protected.GET("/authors/:username/blogs", blogs.ListByAuthor)
		protected.POST("/blogs", blogs.Create)
		protected.PUT("/blogs/:id", blogs.Update)
		protected.DELETE("/blogs/:id", blogs.Delete)
		protected.POST("/blogs/:id/likes", likes.Toggle)

		protected.POST("/comments", comments.Create)
		protected.DELETE("/comments/:id", comments.Delete)

		protected.POST("/follows/:id", follows.Follow)
		protected.DELETE("/follows/:id", follows.Unfollow)

		protected.GET("/notifications", notifications.List)
		protected.GET("/notifications/unread-count", notifications.UnreadCount)
		protected.PATCH("/notifications/:id/read", notifications.MarkRead)
		protected.POST("/notifications/read-all", notifications.MarkAllRead)
		protected.DELETE("/notifications/:id", notifications.Delete)

		protected.POST("/reports", reports.Create)
	}

	adminGroup := api.Group("/admin", RequireAuthority(model.AuthorityAdmin))
	{
		adminGroup.GET("/users", admin.ListUsers)
		adminGroup.PATCH("/users/:id/ban", admin.BanUser)
		adminGroup.PATCH("/users/:id/unban", admin.UnbanUser)
		adminGroup.DELETE("/users/:id", admin.DeleteUser)

		adminGroup.GET("/blogs", admin.ListBlogs)
		adminGroup.PATCH("/blogs/:id/visibility", admin.ToggleBlogVisible)
		adminGroup.DELETE("/blogs/:id", admin.DeleteBlog)

		adminGroup.GET("/reports", admin.ListReports)
		adminGroup.PATCH("/reports/:id", admin.UpdateReportStatus)
		adminGroup.DELETE("/reports/:id", admin.DeleteReport)
	}

	return r
}
