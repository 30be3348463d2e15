// Package api provides the REST API server for hapticsynth
package api

import (
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/hapticlab/hapticsynth/pkg/export"
	"github.com/hapticlab/hapticsynth/pkg/pattern"
)

// @title HapticSynth API
// @version 1.0
// @description API for decoding haptic authoring files into intensity curves
// @host localhost:8080
// @BasePath /api/v1

// StartServer starts the API server on the specified port
func StartServer(port int) error {
	r := gin.Default()

	// CORS middleware
	r.Use(corsMiddleware())

	// Health check
	r.GET("/health", healthCheck)

	// API v1 routes
	v1 := r.Group("/api/v1")
	{
		v1.GET("/health", healthCheck)
		v1.POST("/synthesize", handleSynthesize)
		v1.POST("/export/midi", handleExportMIDI)
		v1.GET("/formats", listFormats)
	}

	// Swagger docs
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r.Run(fmt.Sprintf(":%d", port))
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// healthCheck godoc
// @Summary Health check endpoint
// @Description Returns the health status of the API
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "hapticsynth",
	})
}

// listFormats godoc
// @Summary List supported formats
// @Description Returns a list of supported haptic file formats
// @Tags info
// @Produce json
// @Success 200 {object} map[string][]string
// @Router /api/v1/formats [get]
func listFormats(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"formats":    []string{"haptic", "ahap", "haps"},
		"extensions": pattern.SupportedExtensions(),
	})
}

// handleSynthesize godoc
// @Summary Synthesize an intensity curve
// @Description Upload a .haptic/.ahap/.haps file and receive its intensity curve as JSON
// @Tags synthesize
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Haptic document to decode"
// @Param gain query number false "Gain multiplier (default 1.0)"
// @Param invert query boolean false "Invert output intensities"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Router /api/v1/synthesize [post]
func handleSynthesize(c *gin.Context) {
	data, ext, _, ok := readUpload(c)
	if !ok {
		return
	}

	curve, err := pattern.Synthesize(data, ext, readOptions(c))

	// Parse failures are non-fatal: the caller gets an empty curve plus a
	// diagnostic so authoring UIs can keep running.
	resp := gin.H{"curve": curve}
	if err != nil {
		resp["diagnostic"] = err.Error()
	}
	c.JSON(http.StatusOK, resp)
}

// handleExportMIDI godoc
// @Summary Export a haptic document as MIDI CC automation
// @Description Upload a .haptic/.ahap/.haps file and receive a .mid file
// @Tags synthesize
// @Accept multipart/form-data
// @Produce application/octet-stream
// @Param file formData file true "Haptic document to decode"
// @Param gain query number false "Gain multiplier (default 1.0)"
// @Param invert query boolean false "Invert output intensities"
// @Success 200 {file} binary
// @Failure 400 {object} map[string]string
// @Router /api/v1/export/midi [post]
func handleExportMIDI(c *gin.Context) {
	data, ext, name, ok := readUpload(c)
	if !ok {
		return
	}

	curve, synthErr := pattern.Synthesize(data, ext, readOptions(c))
	if synthErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": synthErr.Error()})
		return
	}

	midiData, err := export.ToMIDI(curve, export.DefaultMIDIOptions())
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if name == "" {
		name = "curve"
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s.mid", name))
	c.Data(http.StatusOK, "audio/midi", midiData)
}

// readUpload pulls the uploaded document, its extension and its base name
// out of the request, replying 400 itself when no file is present
func readUpload(c *gin.Context) (data []byte, ext, name string, ok bool) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file uploaded"})
		return nil, "", "", false
	}
	defer func() { _ = file.Close() }()

	data, err = io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read file"})
		return nil, "", "", false
	}

	ext = filepath.Ext(header.Filename)
	name = strings.TrimSuffix(filepath.Base(header.Filename), ext)
	return data, ext, name, true
}

func readOptions(c *gin.Context) pattern.Options {
	opts := pattern.DefaultOptions()
	if g := c.Query("gain"); g != "" {
		if v, err := strconv.ParseFloat(g, 64); err == nil {
			opts.Gain = v
		}
	}
	opts.Invert = c.Query("invert") == "true" || c.Query("invert") == "1"
	return opts
}
