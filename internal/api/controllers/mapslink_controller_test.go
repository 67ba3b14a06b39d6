package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tramper/internal/models/response_models"
	"tramper/pkg/utils"
)

type stubMapsLinkService struct {
	result *response_models.MapsLinkResponse
	err    error
}

func (s *stubMapsLinkService) Resolve(ctx context.Context, link string) (*response_models.MapsLinkResponse, error) {
	if link == "" {
		return nil, utils.ErrURLRequired
	}
	return s.result, s.err
}

func setupMapsLinkRouter(svc *stubMapsLinkService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/resolve-maps-link", NewMapsLinkController(svc).ResolveLink)
	return router
}

func postLink(router *gin.Engine, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/resolve-maps-link", bytes.NewReader([]byte(body)))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestResolveLinkSuccess(t *testing.T) {
	lat, lng := -37.8721, 175.6829
	router := setupMapsLinkRouter(&stubMapsLinkService{
		result: &response_models.MapsLinkResponse{
			Name: "Hobbiton Movie Set",
			Lat:  &lat,
			Lng:  &lng,
		},
	})

	rec := postLink(router, `{"url":"https://maps.app.goo.gl/abc123"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp response_models.MapsLinkResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Hobbiton Movie Set", resp.Name)
	require.NotNil(t, resp.Lat)
	assert.InDelta(t, -37.8721, *resp.Lat, 1e-9)
}

func TestResolveLinkMissingURL(t *testing.T) {
	router := setupMapsLinkRouter(&stubMapsLinkService{})

	rec := postLink(router, `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"URL is required"}`, rec.Body.String())
}

func TestResolveLinkUnsupported(t *testing.T) {
	router := setupMapsLinkRouter(&stubMapsLinkService{err: utils.ErrUnsupportedMapLink})

	rec := postLink(router, `{"url":"https://example.com/maps"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"Only Google Maps short links are supported"}`, rec.Body.String())
}

func TestResolveLinkFailure(t *testing.T) {
	router := setupMapsLinkRouter(&stubMapsLinkService{err: utils.ErrLinkResolveFailed})

	rec := postLink(router, `{"url":"https://maps.app.goo.gl/dead"}`)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"Failed to resolve the link"}`, rec.Body.String())
}
