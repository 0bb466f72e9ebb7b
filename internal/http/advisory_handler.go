package http

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"grama-vaani/internal/service"
	"grama-vaani/internal/speech"
)

const maxCropImageBytes = 8 << 20

// AdvisoryHandler holds dependencies for the advisory, weather, crop, price
// and scheme endpoints.
type AdvisoryHandler struct {
	logger       *zap.Logger
	advisoryServ *service.AdvisoryService
	weatherServ  *service.WeatherService
	cropServ     *service.CropService
	priceServ    *service.PriceService
	schemeServ   *service.SchemeService
	synth        speech.Synthesizer
}

func NewAdvisoryHandler(
	logger *zap.Logger,
	advisoryServ *service.AdvisoryService,
	weatherServ *service.WeatherService,
	cropServ *service.CropService,
	priceServ *service.PriceService,
	schemeServ *service.SchemeService,
	synth speech.Synthesizer,
) *AdvisoryHandler {
	return &AdvisoryHandler{
		logger:       logger,
		advisoryServ: advisoryServ,
		weatherServ:  weatherServ,
		cropServ:     cropServ,
		priceServ:    priceServ,
		schemeServ:   schemeServ,
		synth:        synth,
	}
}

// Advisory handles GET /advisory?language=.
func (h *AdvisoryHandler) Advisory(c *gin.Context) {
	user, ok := CurrentUser(c)
	if !ok {
		unauthorized(c, "Not authenticated")
		return
	}
	language := c.DefaultQuery("language", "en-US")

	text := h.advisoryServ.BuildDailyAdvisory(c.Request.Context(), user, language)
	c.JSON(http.StatusOK, spoken(c.Request.Context(), h.logger, h.synth, text, language))
}

// Weather handles GET /weather/:city?language=.
func (h *AdvisoryHandler) Weather(c *gin.Context) {
	city := c.Param("city")
	language := c.DefaultQuery("language", "en-US")

	text := h.weatherServ.GetWeather(c.Request.Context(), city, language)
	c.JSON(http.StatusOK, spoken(c.Request.Context(), h.logger, h.synth, text, language))
}

// AnalyseCrop handles POST /analyse-crop (multipart). This is the one spoken
// path without a fallback text contract: a hard analysis failure is a 500.
func (h *AdvisoryHandler) AnalyseCrop(c *gin.Context) {
	language := c.DefaultPostForm("language", "en-US")

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing image file"})
		return
	}
	if fileHeader.Size > maxCropImageBytes {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image too large"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.logger.Error("open crop upload failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not read image"})
		return
	}
	defer file.Close()

	image, err := io.ReadAll(file)
	if err != nil {
		h.logger.Error("read crop upload failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not read image"})
		return
	}

	text, err := h.cropServ.Analyze(c.Request.Context(), image, fileHeader.Header.Get("Content-Type"), language)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Image analysis failed due to a server error."})
		return
	}

	c.JSON(http.StatusOK, spoken(c.Request.Context(), h.logger, h.synth, text, language))
}

// Price handles POST /price. Reports are text-only, audio is always null.
func (h *AdvisoryHandler) Price(c *gin.Context) {
	var req struct {
		Text     string `json:"text" binding:"required"`
		Language string `json:"language" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid price request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	text := h.priceServ.Report(c.Request.Context(), req.Text, req.Language)
	c.JSON(http.StatusOK, gin.H{"text": text, "audio": nil})
}

// Scheme handles POST /scheme. Text-only like Price.
func (h *AdvisoryHandler) Scheme(c *gin.Context) {
	var req struct {
		Text     string `json:"text" binding:"required"`
		Language string `json:"language" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid scheme request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	text := h.schemeServ.Advise(c.Request.Context(), req.Text, req.Language)
	c.JSON(http.StatusOK, gin.H{"text": text, "audio": nil})
}
