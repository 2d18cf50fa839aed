package handlers

import (
	"errors"
	"net/http"
	"path/filepath"
	"strconv"

	"hugo-writer/pkg/config"
	"hugo-writer/pkg/models"
	"hugo-writer/pkg/services"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

// postRequest carries the form fields of the editor. gin's binding layer
// rejects a save without title or body before it reaches the repository.
type postRequest struct {
	OriginalTitle string   `json:"originalTitle"`
	Title         string   `json:"title" binding:"required"`
	Body          string   `json:"body" binding:"required"`
	Description   string   `json:"description"`
	Author        string   `json:"author"`
	Tags          []string `json:"tags"`
	Weight        int      `json:"weight"`
	CoverImage    string   `json:"coverImage"`
}

func (r postRequest) toPost() models.Post {
	return models.Post{
		Title: r.Title,
		Body:  r.Body,
		FrontMatter: models.FrontMatter{
			Title:       r.Title,
			Description: r.Description,
			Author:      r.Author,
			Tags:        r.Tags,
			Weight:      r.Weight,
			CoverImage:  r.CoverImage,
		},
	}
}

func statusForError(err error) int {
	switch {
	case errors.Is(err, services.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrDuplicateTitle):
		return http.StatusConflict
	case errors.Is(err, services.ErrInvalidArgument):
		return http.StatusBadRequest
	case errors.Is(err, services.ErrMalformedDocument):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func fail(c *gin.Context, err error) {
	c.JSON(statusForError(err), gin.H{"error": err.Error()})
}

// ListPosts returns one page of post summaries. The seq query parameter is
// echoed back untouched so a debounced UI can discard responses that
// arrive out of order.
func ListPosts(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("pageSize", "0"))
	search := c.Query("search")

	result, err := services.ListPosts(config.ContentDir, config.SiteRoot, config.ImageDir, page, pageSize, search)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"result": result, "seq": c.Query("seq")})
}

func GetPost(c *gin.Context) {
	title := c.Query("title")
	if title == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "title is required"})
		return
	}
	post, err := services.LoadPost(title, config.ContentDir)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, post)
}

func CreatePost(c *gin.Context) {
	var req postRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON: " + err.Error()})
		return
	}
	path, err := services.SavePost(req.toPost(), config.ContentDir)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "saved", "path": path})
}

func UpdatePost(c *gin.Context) {
	var req postRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON: " + err.Error()})
		return
	}
	original := req.OriginalTitle
	if original == "" {
		original = req.Title
	}
	path, err := services.UpdatePost(original, req.toPost(), config.ContentDir)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "updated", "path": path})
}

func DeletePost(c *gin.Context) {
	title := c.Query("title")
	if title == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "title is required"})
		return
	}
	if err := services.DeletePost(title, config.ContentDir, config.ImageDir, config.SiteRoot); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

// CheckDuplicate answers the editor's debounced title check. exclude names
// the post being edited so it never collides with itself.
func CheckDuplicate(c *gin.Context) {
	title := c.Query("title")
	if title == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "title is required"})
		return
	}
	dup, conflict, err := services.CheckTitleDuplicate(title, config.ContentDir, c.Query("exclude"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"duplicate": dup, "conflictingPath": conflict, "seq": c.Query("seq")})
}

// PublishPost commits a stored post and pushes the site repository.
func PublishPost(c *gin.Context) {
	var req struct {
		Path    string `json:"path" binding:"required"`
		Message string `json:"message"`
	}
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON: " + err.Error()})
		return
	}

	// The UI may send the stored absolute path or a filename relative to
	// the content directory; relative input is confined to that tree.
	postPath := req.Path
	if !filepath.IsAbs(postPath) {
		postPath = services.SafeJoin(config.ContentDir, "", postPath)
		if postPath == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid path"})
			return
		}
	}

	log, err := services.CommitPost(postPath, req.Message)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "log": log})
		return
	}

	session := sessions.Default(c)
	token, _ := session.Get("access_token").(string)
	if token != "" {
		if err, pushLog := services.PushSite(token); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "log": log + pushLog})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "published", "log": log})
}

func HandleSync(c *gin.Context) {
	session := sessions.Default(c)
	token, _ := session.Get("access_token").(string)
	err, log := services.SyncSite(token)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "log": log})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "log": log})
}

func HandleBuild(c *gin.Context) {
	err, log := services.BuildSite()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "log": log})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "log": log})
}

// GetConfig exposes the effective directories so the editor can show them.
func GetConfig(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"contentDir":    config.ContentDir,
		"siteRoot":      config.SiteRoot,
		"imageDir":      config.ImageDir,
		"staticFolder":  config.StaticFolder,
		"defaultAuthor": config.DefaultAuthor,
		"pageSize":      config.DefaultPageSize,
	})
}
