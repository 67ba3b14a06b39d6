package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tramper/internal/models/request_models"
	"tramper/internal/services"
	"tramper/pkg/utils"
)

type MapsLinkController struct {
	mapsLinkService services.MapsLinkService
}

func NewMapsLinkController(mapsLinkService services.MapsLinkService) *MapsLinkController {
	return &MapsLinkController{
		mapsLinkService: mapsLinkService,
	}
}

func (m *MapsLinkController) ResolveLink(c *gin.Context) {
	var req request_models.MapsLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "URL is required")
		return
	}

	result, err := m.mapsLinkService.Resolve(c.Request.Context(), req.URL)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
