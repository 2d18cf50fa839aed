package handlers

import (
	"net/http"

	"hugo-writer/pkg/services"

	"github.com/gin-gonic/gin"
)

// UploadCover accepts an editor image upload, compresses it into the image
// directory, and returns the site URL to put in the coverImage field.
func UploadCover(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file uploaded"})
		return
	}

	src, err := file.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read upload"})
		return
	}
	defer src.Close()

	info, err := services.SaveCoverImage(src, file.Filename)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, info)
}

// GetCover streams the raw bytes of a cover image for preview.
func GetCover(c *gin.Context) {
	cover := c.Query("path")
	if cover == "" {
		c.Status(http.StatusBadRequest)
		return
	}
	data, err := services.ReadCoverImage(cover)
	if err != nil {
		fail(c, err)
		return
	}
	c.Data(http.StatusOK, http.DetectContentType(data), data)
}

func DeleteCover(c *gin.Context) {
	var req struct {
		Path string `json:"path" binding:"required"`
	}
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON"})
		return
	}
	if err := services.DeleteCoverImage(req.Path); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
