//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"

	"github.com/yanqian/desi-diet/internal/bootstrap"
	"github.com/yanqian/desi-diet/internal/domain/auth"
	"github.com/yanqian/desi-diet/internal/domain/catalog"
	"github.com/yanqian/desi-diet/internal/domain/nutrition"
	"github.com/yanqian/desi-diet/internal/domain/profile"
	"github.com/yanqian/desi-diet/internal/domain/recommend"
	"github.com/yanqian/desi-diet/internal/domain/subscription"
	"github.com/yanqian/desi-diet/internal/infra/config"
	httpiface "github.com/yanqian/desi-diet/internal/interface/http"
	"github.com/yanqian/desi-diet/pkg/logger"
)

func initializeApp() (*bootstrap.App, func(), error) {
	wire.Build(
		config.Load,
		logger.New,
		provideBackends,
		provideStateStore,
		provideUserRepository,
		provideSubscriptionRepository,
		provideCatalogSource,
		provideCatalog,
		provideAuthConfig,
		provideNutritionConfig,
		provideSubscriptionConfig,
		provideClock,
		provideScheduler,
		auth.NewService,
		profile.NewService,
		nutrition.NewService,
		recommend.NewService,
		subscription.NewService,
		wire.Bind(new(nutrition.FoodLookup), new(*catalog.Catalog)),
		wire.Bind(new(nutrition.TargetSource), new(profile.Service)),
		wire.Bind(new(auth.MembershipSource), new(subscription.Service)),
		httpiface.NewHandler,
		httpiface.NewRouter,
		bootstrap.NewApp,
	)
	return nil, nil, nil
}
