package main

import (
	"net/http"
	"os"

	"hugo-writer/pkg/config"
	"hugo-writer/pkg/handlers"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
)

func main() {
	// Initialize config
	config.Init()

	r := gin.Default()

	// Session Setup
	store := cookie.NewStore([]byte(os.Getenv("SESSION_SECRET")))
	r.Use(sessions.Sessions("hugowriter", store))

	// Static Files & Templates
	r.LoadHTMLGlob("templates/*")
	r.Static(config.PreviewURL, config.PublicPath)
	r.Static("/static", "./static") // Serve editor assets (css/js)

	// --- Auth Routes ---
	r.GET("/login", handlers.LoginPage)
	r.GET("/login/github", handlers.GithubLogin)
	r.GET("/auth/callback", handlers.AuthCallback)
	r.GET("/logout", handlers.Logout)

	// --- Editor (Authorized) ---
	authorized := r.Group("/")
	authorized.Use(handlers.AuthRequired)
	{
		authorized.GET("/", func(c *gin.Context) { c.HTML(http.StatusOK, "index.html", nil) })

		api := authorized.Group("/api")
		{
			api.GET("/posts", handlers.ListPosts)
			api.GET("/post", handlers.GetPost)
			api.POST("/post", handlers.CreatePost)
			api.PUT("/post", handlers.UpdatePost)
			api.DELETE("/post", handlers.DeletePost)
			api.GET("/duplicate", handlers.CheckDuplicate)
			api.POST("/publish", handlers.PublishPost)
			api.POST("/sync", handlers.HandleSync)
			api.POST("/build", handlers.HandleBuild)
			api.GET("/config", handlers.GetConfig)
			api.POST("/media", handlers.UploadCover)
			api.GET("/media", handlers.GetCover)
			api.DELETE("/media", handlers.DeleteCover)
		}
	}

	r.Run(":8080")
}
