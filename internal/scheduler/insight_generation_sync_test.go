package scheduler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/marketing-ops-api/infrastructure/repository/mocks"
	"github.com/vfg2006/marketing-ops-api/internal/domain"
	insightingmocks "github.com/vfg2006/marketing-ops-api/internal/usecases/insighting/mocks"
	"go.uber.org/mock/gomock"
)

func newTestSyncService(
	clientRepo *mocks.MockClientRepository,
	insightService *insightingmocks.MockInsighter,
) *InsightGenerationSyncService {
	return &InsightGenerationSyncService{
		config: InsightGenerationSyncConfig{
			CronSchedule:        "0 5 * * *",
			LookbackDays:        7,
			RequestDelaySeconds: 0,
			MaxConcurrentJobs:   2,
			SyncEnabled:         true,
		},
		clientRepo:     clientRepo,
		insightService: insightService,
	}
}

func TestInsightGenerationSyncService_processClients(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockClientRepo := mocks.NewMockClientRepository(ctrl)
	mockInsighter := insightingmocks.NewMockInsighter(ctrl)
	service := newTestSyncService(mockClientRepo, mockInsighter)

	tests := []struct {
		name    string
		clients []*domain.Client
		setup   func()
	}{
		{
			name: "Gera insights para cada cliente com external_id",
			clients: []*domain.Client{
				{ID: "cl-001", ExternalID: "acc-1", Name: "Loja A"},
				{ID: "cl-002", ExternalID: "acc-2", Name: "Loja B"},
			},
			setup: func() {
				mockInsighter.EXPECT().
					RunGeneration("cl-001", gomock.Any()).
					Return(&domain.GenerationSummary{ClientID: "cl-001", Created: 2}, nil)

				mockInsighter.EXPECT().
					RunGeneration("cl-002", gomock.Any()).
					Return(&domain.GenerationSummary{ClientID: "cl-002"}, nil)
			},
		},
		{
			name: "Cliente sem external_id é pulado",
			clients: []*domain.Client{
				{ID: "cl-001", ExternalID: "acc-1", Name: "Loja A"},
				{ID: "cl-003", ExternalID: "", Name: "Loja sem vínculo"},
			},
			setup: func() {
				mockInsighter.EXPECT().
					RunGeneration("cl-001", gomock.Any()).
					Return(&domain.GenerationSummary{ClientID: "cl-001"}, nil)
			},
		},
		{
			name: "Erro em um cliente não interrompe os demais",
			clients: []*domain.Client{
				{ID: "cl-001", ExternalID: "acc-1", Name: "Loja A"},
				{ID: "cl-002", ExternalID: "acc-2", Name: "Loja B"},
			},
			setup: func() {
				mockInsighter.EXPECT().
					RunGeneration("cl-001", gomock.Any()).
					Return(nil, assert.AnError)

				mockInsighter.EXPECT().
					RunGeneration("cl-002", gomock.Any()).
					Return(&domain.GenerationSummary{ClientID: "cl-002"}, nil)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()

			filters := service.buildPeriodFilter()
			service.processClients(tt.clients, filters)
		})
	}
}

func TestInsightGenerationSyncService_buildPeriodFilter(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service := newTestSyncService(mocks.NewMockClientRepository(ctrl), insightingmocks.NewMockInsighter(ctrl))

	filters := service.buildPeriodFilter()

	assert.NotNil(t, filters.StartDate)
	assert.NotNil(t, filters.EndDate)

	// Janela de 7 dias terminando ontem
	days := int(filters.EndDate.Sub(*filters.StartDate).Hours()/24) + 1
	assert.Equal(t, 7, days)
	assert.True(t, filters.EndDate.Before(filters.StartDate.AddDate(0, 0, 7)))
}

func TestInsightGenerationSyncService_generateForAllClients(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockClientRepo := mocks.NewMockClientRepository(ctrl)
	mockInsighter := insightingmocks.NewMockInsighter(ctrl)
	service := newTestSyncService(mockClientRepo, mockInsighter)

	mockClientRepo.EXPECT().
		ListClients([]domain.ClientStatus{domain.ClientStatusActive}).
		Return([]*domain.Client{
			{ID: "cl-001", ExternalID: "acc-1", Name: "Loja A"},
		}, nil)

	mockInsighter.EXPECT().
		RunGeneration("cl-001", gomock.Any()).
		Return(&domain.GenerationSummary{ClientID: "cl-001", Created: 1}, nil)

	service.generateForAllClients()

	assert.False(t, service.lastSyncStartedAt.IsZero())
	assert.False(t, service.lastSyncCompletedAt.IsZero())
}

func TestInsightGenerationSyncService_GetStatus(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service := newTestSyncService(mocks.NewMockClientRepository(ctrl), insightingmocks.NewMockInsighter(ctrl))

	status := service.GetStatus()

	assert.Equal(t, true, status["sync_enabled"])
	assert.Equal(t, "0 5 * * *", status["sync_cron"])
	assert.Equal(t, 7, status["sync_lookback_days"])
	assert.Equal(t, 2, status["sync_max_concurrent"])
}
