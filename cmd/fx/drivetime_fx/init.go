package drivetime_fx

import (
	"go.uber.org/fx"

	"tramper/internal/services"
	mem "tramper/pkg/memcache"
)

var Module = fx.Provide(provideDirectionsClient)

func provideDirectionsClient() services.DirectionsService {
	return services.NewMapboxDirectionsClient(mem.NewRouteCache())
}
