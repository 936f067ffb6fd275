// Package chronos wires the card pack service together: configuration,
// database, repositories, the allocation core, and the on-chain gateway.
package chronos

import (
	"context"
	"log/slog"

	"github.com/projectchronos/chronos/chronos/chain"
	"github.com/projectchronos/chronos/chronos/database"
	"github.com/projectchronos/chronos/chronos/database/repositories"
	"github.com/projectchronos/chronos/chronos/packs"
	"github.com/projectchronos/chronos/chronos/services"
)

func New(cfg Config, version string, commit string) *App {
	return &App{
		Cfg:     cfg,
		Version: version,
		Commit:  commit,
	}
}

type App struct {
	Cfg     Config
	Version string
	Commit  string

	DB                 *database.DB
	TemplateRepository repositories.TemplateRepository
	PackRepository     repositories.PackRepository
	ClaimRepository    repositories.ClaimRepository
	SpacesService      *services.SpacesService
	ChainGateway       *chain.Gateway
	PackService        *packs.Service
}

// Setup builds the service graph on top of an already connected database.
func (a *App) Setup() {
	a.TemplateRepository = repositories.NewTemplateRepository(a.DB.BunDB())
	a.PackRepository = repositories.NewPackRepository(a.DB.BunDB())
	a.ClaimRepository = repositories.NewClaimRepository(a.DB.BunDB())
	a.ChainGateway = chain.NewGateway(a.Cfg.Chain)
	a.SpacesService = services.NewSpacesService(
		a.Cfg.Spaces.Key,
		a.Cfg.Spaces.Secret,
		a.Cfg.Spaces.Region,
		a.Cfg.Spaces.Bucket,
		a.Cfg.Spaces.CardRoot,
	)

	a.PackService = packs.NewService(
		a.TemplateRepository,
		a.PackRepository,
		a.ClaimRepository,
		a.ChainGateway,
		packs.WithArtResolver(a.SpacesService),
	)
}

// Bootstrap seeds the default welcome template. Safe to run on every start.
func (a *App) Bootstrap(ctx context.Context) error {
	created, err := a.PackService.EnsureWelcomePackTemplateExists(ctx)
	if err != nil {
		return err
	}
	if created {
		slog.Info("Welcome pack template created")
	} else {
		slog.Info("Welcome pack template already present")
	}
	return nil
}

func (a *App) Close() {
	if a.DB != nil {
		a.DB.Close()
	}
}
