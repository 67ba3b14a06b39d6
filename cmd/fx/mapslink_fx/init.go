package mapslink_fx

import (
	"go.uber.org/fx"

	"tramper/internal/api/controllers"
	"tramper/internal/services"
)

var Module = fx.Provide(
	provideMapsLinkService, provideMapsLinkController)

func provideMapsLinkService() services.MapsLinkService {
	return services.NewMapsLinkService()
}

func provideMapsLinkController(mapsLinkService services.MapsLinkService) *controllers.MapsLinkController {
	return controllers.NewMapsLinkController(mapsLinkService)
}
