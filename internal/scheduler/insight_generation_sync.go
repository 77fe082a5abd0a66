package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/marketing-ops-api/infrastructure/repository"
	"github.com/vfg2006/marketing-ops-api/internal/config"
	"github.com/vfg2006/marketing-ops-api/internal/domain"
	"github.com/vfg2006/marketing-ops-api/internal/usecases/insighting"
)

// InsightGenerationSyncConfig representa a configuração do agendador de geração de insights
type InsightGenerationSyncConfig struct {
	CronSchedule        string
	LookbackDays        int
	RequestDelaySeconds int
	MaxConcurrentJobs   int
	SyncEnabled         bool
}

// InsightGenerationSyncService gerencia o agendamento da geração periódica de
// insights para todos os clientes ativos
type InsightGenerationSyncService struct {
	scheduler           *gocron.Scheduler
	config              InsightGenerationSyncConfig
	clientRepo          repository.ClientRepository
	insightService      insighting.Insighter
	syncRunning         bool
	syncMutex           sync.Mutex
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
}

// NewInsightGenerationSyncService cria uma nova instância do serviço de geração agendada
func NewInsightGenerationSyncService(
	clientRepo repository.ClientRepository,
	insightService insighting.Insighter,
	appConfig *config.Config,
) *InsightGenerationSyncService {
	syncConfig := InsightGenerationSyncConfig{
		CronSchedule:        appConfig.InsightGenerationSync.CronSchedule,
		LookbackDays:        appConfig.InsightGenerationSync.LookbackDays,
		RequestDelaySeconds: appConfig.InsightGenerationSync.RequestDelaySeconds,
		MaxConcurrentJobs:   appConfig.InsightGenerationSync.MaxConcurrentJobs,
		SyncEnabled:         appConfig.InsightGenerationSync.Enabled,
	}

	scheduler := gocron.NewScheduler(time.Local)

	logrus.WithFields(logrus.Fields{
		"cron_schedule":         syncConfig.CronSchedule,
		"lookback_days":         syncConfig.LookbackDays,
		"request_delay_seconds": syncConfig.RequestDelaySeconds,
		"max_concurrent_jobs":   syncConfig.MaxConcurrentJobs,
		"sync_enabled":          syncConfig.SyncEnabled,
	}).Info("Configuração do agendador de geração de insights carregada")

	return &InsightGenerationSyncService{
		scheduler:      scheduler,
		config:         syncConfig,
		clientRepo:     clientRepo,
		insightService: insightService,
		syncRunning:    false,
	}
}

// Start inicia o agendador
func (s *InsightGenerationSyncService) Start(ctx context.Context) error {
	if !s.config.SyncEnabled {
		logrus.Info("Geração agendada de insights desabilitada por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando agendador de geração de insights")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		s.generateForAllClients()
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar geração de insights: %w", err)
	}

	s.scheduler.StartAsync()

	// Parar o agendador quando o contexto for cancelado
	go func() {
		<-ctx.Done()
		logrus.Info("Parando agendador de geração de insights")
		s.scheduler.Stop()
	}()

	return nil
}

// generateForAllClients executa o ciclo de geração para todos os clientes
// ativos. Execuções sobrepostas são ignoradas.
func (s *InsightGenerationSyncService) generateForAllClients() {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Geração de insights já em andamento, ignorando")
		return
	}
	s.syncRunning = true
	s.syncMutex.Unlock()

	startTime := time.Now()
	s.lastSyncStartedAt = startTime

	defer func() {
		s.syncMutex.Lock()
		s.syncRunning = false
		s.syncMutex.Unlock()
	}()

	logrus.Info("Iniciando geração de insights para todos os clientes ativos")

	activeClients, err := s.getActiveClients()
	if err != nil {
		logrus.WithError(err).Error("Erro ao buscar lista de clientes para geração de insights")
		return
	}

	if len(activeClients) == 0 {
		logrus.Info("Nenhum cliente ativo encontrado para geração de insights")
		return
	}

	filters := s.buildPeriodFilter()
	logrus.WithFields(logrus.Fields{
		"days":       s.config.LookbackDays,
		"start_date": filters.StartDate.Format(time.DateOnly),
		"end_date":   filters.EndDate.Format(time.DateOnly),
	}).Info("Período para geração de insights")

	s.processClients(activeClients, filters)

	duration := time.Since(startTime)
	logrus.WithFields(logrus.Fields{
		"duration": duration.String(),
		"clients":  len(activeClients),
	}).Info("Geração de insights concluída")

	s.lastSyncCompletedAt = time.Now()
}

// getActiveClients busca e filtra clientes ativos
func (s *InsightGenerationSyncService) getActiveClients() ([]*domain.Client, error) {
	activeClients, err := s.clientRepo.ListClients([]domain.ClientStatus{domain.ClientStatusActive})
	if err != nil {
		return nil, err
	}

	if len(activeClients) == 0 {
		logrus.Info("Nenhum cliente encontrado para geração de insights")
		return []*domain.Client{}, nil
	}

	logrus.WithFields(logrus.Fields{
		"active_clients": len(activeClients),
	}).Info("Clientes encontrados para geração de insights")

	return activeClients, nil
}

// buildPeriodFilter monta a janela de análise: lookback em dias terminando
// ontem, para não avaliar um dia corrente ainda incompleto
func (s *InsightGenerationSyncService) buildPeriodFilter() *domain.PeriodFilter {
	end := time.Now().AddDate(0, 0, -1)
	start := end.AddDate(0, 0, -(s.config.LookbackDays - 1))

	return &domain.PeriodFilter{
		StartDate: &start,
		EndDate:   &end,
	}
}

// processClients executa a geração para cada cliente com concorrência limitada
func (s *InsightGenerationSyncService) processClients(clients []*domain.Client, filters *domain.PeriodFilter) {
	semaphore := make(chan struct{}, s.config.MaxConcurrentJobs)
	var wg sync.WaitGroup

	for _, client := range clients {
		if client.ExternalID == "" {
			logrus.WithField("client_id", client.ID).Warn("Cliente sem external_id. Pulando.")
			continue
		}

		wg.Add(1)
		semaphore <- struct{}{} // Adquirir semáforo

		go func(c *domain.Client) {
			defer func() {
				<-semaphore // Liberar semáforo
				wg.Done()
			}()

			s.processClient(c, filters)

			// Aguardar antes da próxima requisição para evitar sobrecarga na API
			time.Sleep(time.Duration(s.config.RequestDelaySeconds) * time.Second)
		}(client)
	}

	wg.Wait()
}

// processClient executa o ciclo completo de geração para um cliente
func (s *InsightGenerationSyncService) processClient(client *domain.Client, filters *domain.PeriodFilter) {
	logrus.WithFields(logrus.Fields{
		"client_id":   client.ID,
		"external_id": client.ExternalID,
		"client_name": client.Name,
	}).Info("Gerando insights para cliente")

	summary, err := s.insightService.RunGeneration(client.ID, filters)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"client_id":   client.ID,
			"external_id": client.ExternalID,
			"error":       err.Error(),
		}).Error("Erro ao gerar insights para cliente")
		return
	}

	logrus.WithFields(logrus.Fields{
		"client_id":     client.ID,
		"fired":         len(summary.Results),
		"created":       summary.Created,
		"skipped":       summary.Skipped,
		"auto_resolved": summary.Resolved,
	}).Info("Insights gerados com sucesso para cliente")
}

// TriggerManualSync inicia manualmente um ciclo de geração de insights
func (s *InsightGenerationSyncService) TriggerManualSync() {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Geração de insights já em andamento, ignorando solicitação manual")
		return
	}
	s.syncMutex.Unlock()

	logrus.Info("Iniciando geração manual de insights")
	go s.generateForAllClients()
}

// GetStatus retorna o status atual do agendador
func (s *InsightGenerationSyncService) GetStatus() map[string]any {
	return map[string]any{
		"sync_enabled":           s.config.SyncEnabled,
		"sync_cron":              s.config.CronSchedule,
		"sync_lookback_days":     s.config.LookbackDays,
		"sync_max_concurrent":    s.config.MaxConcurrentJobs,
		"sync_request_delay_s":   s.config.RequestDelaySeconds,
		"last_sync_started_at":   s.lastSyncStartedAt,
		"last_sync_completed_at": s.lastSyncCompletedAt,
	}
}
