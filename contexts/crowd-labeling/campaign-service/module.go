package campaignservice

import (
	"log/slog"

	"github.com/go-playground/validator/v10"

	httpadapter "quorum/contexts/crowd-labeling/campaign-service/adapters/http"
	"quorum/contexts/crowd-labeling/campaign-service/adapters/memory"
	"quorum/contexts/crowd-labeling/campaign-service/application/commands"
	"quorum/contexts/crowd-labeling/campaign-service/application/queries"
	"quorum/contexts/crowd-labeling/campaign-service/domain/entities"
	"quorum/contexts/crowd-labeling/campaign-service/ports"
)

type Module struct {
	Handler     httpadapter.Handler
	Store       *memory.Store
	Marketplace *memory.Marketplace
}

type Dependencies struct {
	Campaigns          ports.CampaignRepository
	Marketplace        ports.MarketplaceGateway
	Clock              ports.Clock
	IDGenerator        ports.IDGenerator
	ConsensusThreshold int
	PageSize           int
	Logger             *slog.Logger
}

func NewModule(deps Dependencies) Module {
	createCampaign := commands.CreateCampaignUseCase{
		Campaigns: deps.Campaigns,
		Clock:     deps.Clock,
		IDGen:     deps.IDGenerator,
		Validate:  validator.New(),
		Logger:    deps.Logger,
	}
	deleteCampaign := commands.DeleteCampaignUseCase{
		Campaigns: deps.Campaigns,
		Clock:     deps.Clock,
		IDGen:     deps.IDGenerator,
		Logger:    deps.Logger,
	}
	generateJob := commands.GenerateJobUseCase{
		Campaigns:   deps.Campaigns,
		Marketplace: deps.Marketplace,
		Clock:       deps.Clock,
		IDGen:       deps.IDGenerator,
		Logger:      deps.Logger,
	}
	ingest := commands.IngestUseCase{
		Campaigns:   deps.Campaigns,
		Marketplace: deps.Marketplace,
		Clock:       deps.Clock,
		IDGen:       deps.IDGenerator,
		PageSize:    deps.PageSize,
		Logger:      deps.Logger,
	}

	campaignQueries := queries.CampaignQueries{
		Campaigns: deps.Campaigns,
	}
	results := queries.ResultsUseCase{
		Campaigns: deps.Campaigns,
		Threshold: deps.ConsensusThreshold,
	}

	return Module{
		Handler: httpadapter.Handler{
			CreateCampaign: createCampaign,
			DeleteCampaign: deleteCampaign,
			GenerateJob:    generateJob,
			Ingest:         ingest,
			Campaigns:      campaignQueries,
			Results:        results,
			Logger:         deps.Logger,
		},
	}
}

func NewInMemoryModule(seed []entities.Campaign, threshold int, logger *slog.Logger) Module {
	store := memory.NewStore(seed)
	marketplace := memory.NewMarketplace()
	module := NewModule(Dependencies{
		Campaigns:          store,
		Marketplace:        marketplace,
		Clock:              store,
		IDGenerator:        store,
		ConsensusThreshold: threshold,
		PageSize:           100,
		Logger:             logger,
	})
	module.Store = store
	module.Marketplace = marketplace
	return module
}
