package sync_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"tramper/internal/api/controllers"
	"tramper/internal/repositories"
	"tramper/internal/services"
)

var Module = fx.Provide(
	provideSyncRepo, provideSyncService, provideSyncController)

func provideSyncRepo(db *gorm.DB) repositories.SyncRepository {
	return repositories.NewSyncRepository(db)
}

func provideSyncService(syncRepo repositories.SyncRepository) services.SyncServiceInterface {
	return services.NewSyncService(syncRepo)
}

func provideSyncController(syncService services.SyncServiceInterface, directions services.DirectionsService) *controllers.SyncController {
	return controllers.NewSyncController(syncService, directions)
}
