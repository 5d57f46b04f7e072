package bootstrap

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"github.com/callboard/callboard-backend/internal/assistant"
	"github.com/callboard/callboard-backend/internal/metric"
	"github.com/callboard/callboard-backend/internal/user"
)

func ProvideUserStore(db *gorm.DB) *user.Store {
	return user.NewStore(db)
}

func ProvideAssistantStore(db *gorm.DB) *assistant.Store {
	return assistant.NewStore(db)
}

func ProvideMetricStore(db *gorm.DB) *metric.Store {
	return metric.NewStore(db)
}

func RunMigrations(userStore *user.Store, assistantStore *assistant.Store, metricStore *metric.Store) error {
	if err := userStore.Migrate(); err != nil {
		return err
	}
	if err := assistantStore.Migrate(); err != nil {
		return err
	}
	return metricStore.Migrate()
}

var StoresModule = fx.Options(
	fx.Provide(
		ProvideUserStore,
		ProvideAssistantStore,
		ProvideMetricStore,
	),
	fx.Invoke(RunMigrations),
)
