package services

import (
	"context"
	"net/http"
	"testing"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tramper/pkg/utils"
)

func newMockedMapsLinkService(t *testing.T) MapsLinkService {
	t.Helper()
	client := &http.Client{}
	httpmock.ActivateNonDefault(client)
	t.Cleanup(httpmock.DeactivateAndReset)
	return &mapsLinkService{http: client}
}

// registerRedirect makes the short link expand to target for both HEAD and
// the GET the client may retry with.
func registerRedirect(short, target string) {
	responder := func(req *http.Request) (*http.Response, error) {
		resp := httpmock.NewStringResponse(http.StatusFound, "")
		resp.Header.Set("Location", target)
		resp.Request = req
		return resp, nil
	}
	httpmock.RegisterResponder("HEAD", short, responder)
	httpmock.RegisterResponder("HEAD", target, func(req *http.Request) (*http.Response, error) {
		resp := httpmock.NewStringResponse(http.StatusOK, "")
		resp.Request = req
		return resp, nil
	})
}

func TestResolveAtPattern(t *testing.T) {
	svc := newMockedMapsLinkService(t)
	registerRedirect(
		"https://maps.app.goo.gl/abc123",
		"https://www.google.com/maps/place/Hobbiton+Movie+Set/@-37.8721,175.6829,15z",
	)

	out, err := svc.Resolve(context.Background(), "https://maps.app.goo.gl/abc123")
	require.NoError(t, err)
	require.NotNil(t, out.Lat)
	require.NotNil(t, out.Lng)
	assert.InDelta(t, -37.8721, *out.Lat, 1e-9)
	assert.InDelta(t, 175.6829, *out.Lng, 1e-9)
	assert.Equal(t, "Hobbiton Movie Set", out.Name)
	assert.False(t, out.NeedsGeocode)
}

func TestResolveBangPattern(t *testing.T) {
	svc := newMockedMapsLinkService(t)
	registerRedirect(
		"https://goo.gl/maps/xyz",
		"https://www.google.com/maps/place/Waitomo+Caves/data=!4m5!3m4!1s0x0:0x0!8m2!3d-38.2611!4d175.1035",
	)

	out, err := svc.Resolve(context.Background(), "https://goo.gl/maps/xyz")
	require.NoError(t, err)
	require.NotNil(t, out.Lat)
	assert.InDelta(t, -38.2611, *out.Lat, 1e-9)
	assert.InDelta(t, 175.1035, *out.Lng, 1e-9)
	assert.Equal(t, "Waitomo Caves", out.Name)
}

func TestResolveMobileShareQuery(t *testing.T) {
	svc := newMockedMapsLinkService(t)
	registerRedirect(
		"https://maps.app.goo.gl/mob1",
		"https://maps.google.com/?q=Fergburger,+42+Shotover+St,+Queenstown&ll=-45.0312,168.6626",
	)

	out, err := svc.Resolve(context.Background(), "https://maps.app.goo.gl/mob1")
	require.NoError(t, err)
	assert.Equal(t, "Fergburger", out.Name)
	assert.Equal(t, "42 Shotover St, Queenstown", out.Address)
	require.NotNil(t, out.Lat)
	assert.InDelta(t, -45.0312, *out.Lat, 1e-9)
}

func TestResolveNoCoordinatesNeedsGeocode(t *testing.T) {
	svc := newMockedMapsLinkService(t)
	registerRedirect(
		"https://maps.app.goo.gl/nocoords",
		"https://www.google.com/maps/place/Milford+Sound+Lodge",
	)

	out, err := svc.Resolve(context.Background(), "https://maps.app.goo.gl/nocoords")
	require.NoError(t, err)
	assert.Nil(t, out.Lat)
	assert.Nil(t, out.Lng)
	assert.True(t, out.NeedsGeocode)
	assert.Equal(t, "Milford Sound Lodge", out.Name)
}

func TestResolveRejectsEmptyURL(t *testing.T) {
	svc := newMockedMapsLinkService(t)
	_, err := svc.Resolve(context.Background(), "")
	assert.ErrorIs(t, err, utils.ErrURLRequired)
}

func TestResolveRejectsNonGoogleLink(t *testing.T) {
	svc := newMockedMapsLinkService(t)
	_, err := svc.Resolve(context.Background(), "https://example.com/maps/foo")
	assert.ErrorIs(t, err, utils.ErrUnsupportedMapLink)
}

func TestResolveNetworkFailure(t *testing.T) {
	svc := newMockedMapsLinkService(t)
	// No responder registered: httpmock errors the request.
	_, err := svc.Resolve(context.Background(), "https://maps.app.goo.gl/down")
	assert.ErrorIs(t, err, utils.ErrLinkResolveFailed)
}

func TestExtractCoordinatesPrecedence(t *testing.T) {
	// @ wins over !3d/!4d when both are present.
	lat, lng, ok := extractCoordinates("https://www.google.com/maps/place/X/@-41.29,174.78,14z/data=!3d-36.85!4d174.76")
	require.True(t, ok)
	assert.InDelta(t, -41.29, lat, 1e-9)
	assert.InDelta(t, 174.78, lng, 1e-9)
}

func TestExtractPlaceDefaultsName(t *testing.T) {
	name, address := extractPlace("https://www.google.com/maps/@-41.29,174.78,14z")
	assert.Equal(t, "Custom Location", name)
	assert.Empty(t, address)
}
