package api

import (
	"encoding/base64"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"trustlens/engine"
	"trustlens/storage"
	"trustlens/types"
)

// RegisterAnalyzeRoutes registers trust-analysis endpoints.
func RegisterAnalyzeRoutes(r *gin.Engine, eng *engine.Engine, archiver *storage.Archiver) {
	ctrl := &analyzeController{engine: eng, archiver: archiver}
	r.POST("/api/analyze", ctrl.handleAnalyze)
}

type analyzeController struct {
	engine   *engine.Engine
	archiver *storage.Archiver
}

// AnalyzeRequest represents the incoming analysis request. Exactly one of
// Text, URL, or MediaB64 must be set, matching ContentType.
type AnalyzeRequest struct {
	ContentType string `json:"content_type" binding:"required"`
	Text        string `json:"text,omitempty"`
	URL         string `json:"url,omitempty"`
	MediaB64    string `json:"media_b64,omitempty"`
	MimeType    string `json:"mime_type,omitempty"`
}

// ToVariant validates and converts the request body into a content variant.
// The second return is a human-readable problem description, empty on success.
func (req *AnalyzeRequest) ToVariant() (types.ContentVariant, string) {
	switch types.ContentType(req.ContentType) {
	case types.ContentText:
		if req.Text == "" {
			return types.ContentVariant{}, "text is required for content_type text"
		}
		return types.TextContent(req.Text), ""
	case types.ContentURL:
		if req.URL == "" {
			return types.ContentVariant{}, "url is required for content_type url"
		}
		return types.URLContent(req.URL), ""
	case types.ContentImage, types.ContentVideo, types.ContentAudio:
		if req.MediaB64 == "" {
			return types.ContentVariant{}, "media_b64 is required for media content types"
		}
		media, err := base64.StdEncoding.DecodeString(req.MediaB64)
		if err != nil {
			return types.ContentVariant{}, "media_b64 is not valid base64: " + err.Error()
		}
		switch types.ContentType(req.ContentType) {
		case types.ContentImage:
			return types.ImageContent(media, req.MimeType), ""
		case types.ContentVideo:
			return types.VideoContent(media, req.MimeType), ""
		default:
			return types.AudioContent(media, req.MimeType), ""
		}
	default:
		return types.ContentVariant{}, "unsupported content_type: " + req.ContentType
	}
}

// handleAnalyze runs the full analysis pipeline for one content item
// POST /api/analyze
// Returns: types.UnifiedResult JSON
func (ctrl *analyzeController) handleAnalyze(c *gin.Context) {
	var req AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	content, problem := req.ToVariant()
	if problem != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": problem})
		return
	}

	result := ctrl.engine.Analyze(c.Request.Context(), content)

	if ctrl.archiver != nil {
		if err := ctrl.archiver.Archive(c.Request.Context(), result); err != nil {
			log.Printf("Warning: failed to archive result %s: %v", result.RequestID, err)
		}
	}

	c.JSON(http.StatusOK, result)
}
