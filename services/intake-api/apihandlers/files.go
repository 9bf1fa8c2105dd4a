package apihandlers

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/willem4130/thecareranchintake/pkg/utils"
)

const maxUploadFileSize = 10 << 20 // 10 MB

var allowedUploadTypes = []string{
	"image/jpeg",
	"image/png",
	"image/gif",
	"image/webp",
	"application/pdf",
}

// uploadFile stores one attachment for a file upload answer and returns the
// reference the client puts into the answer's file list. Files are scoped per
// instance and user so a reference never resolves across accounts.
func (h *HttpEndpoints) uploadFile(c *gin.Context) {
	token := validatedClaims(c)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		slog.Error("no file in upload request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "file missing from request"})
		return
	}

	if fileHeader.Size > maxUploadFileSize {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "file too large"})
		return
	}

	contentType, err := utils.ValidateFileTypeFromContent(fileHeader, allowedUploadTypes)
	if err != nil {
		slog.Warn("rejected file upload", slog.String("userID", token.Subject), slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "file type not allowed"})
		return
	}

	randomPart := make([]byte, 8)
	if _, err := rand.Read(randomPart); err != nil {
		slog.Error("failed to generate file name", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store file"})
		return
	}
	filename := hex.EncodeToString(randomPart) + utils.GetFileExtensionFromContentType(contentType)

	relativePath := filepath.Join(token.InstanceID, token.Subject, filename)
	targetPath := filepath.Join(h.filestorePath, relativePath)
	if err := os.MkdirAll(filepath.Dir(targetPath), os.ModePerm); err != nil {
		slog.Error("failed to prepare upload folder", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store file"})
		return
	}

	if err := c.SaveUploadedFile(fileHeader, targetPath); err != nil {
		slog.Error("failed to store uploaded file", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store file"})
		return
	}

	slog.Info("file uploaded", slog.String("userID", token.Subject), slog.String("reference", relativePath))
	c.JSON(http.StatusCreated, gin.H{
		"reference":   relativePath,
		"contentType": contentType,
		"size":        fileHeader.Size,
	})
}

// getOwnFile serves a previously uploaded attachment of the requesting user.
func (h *HttpEndpoints) getOwnFile(c *gin.Context) {
	token := validatedClaims(c)

	filename := filepath.Base(c.Param("filename"))
	if filename == "." || filename == string(filepath.Separator) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid file reference"})
		return
	}

	targetPath := filepath.Join(h.filestorePath, token.InstanceID, token.Subject, filename)
	if !strings.HasPrefix(targetPath, filepath.Clean(h.filestorePath)) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid file reference"})
		return
	}
	if _, err := os.Stat(targetPath); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "file not found"})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.File(targetPath)
}
