package api

import (
	"github.com/gin-gonic/gin"

	"trustlens/engine"
	"trustlens/storage"
)

// NewRouter constructs a Gin engine with registered routes.
func NewRouter(eng *engine.Engine, archiver *storage.Archiver) *gin.Engine {
	r := gin.New()
	// Minimal middleware: recovery; logger optional to reduce verbosity
	r.Use(gin.Recovery())

	RegisterAnalyzeRoutes(r, eng, archiver)
	RegisterHealthRoutes(r)
	return r
}
