package adsclient

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	adsdomain "github.com/vfg2006/marketing-ops-api/infrastructure/integrator/adsplatform/domain"
	"github.com/vfg2006/marketing-ops-api/internal/config"
)

type Client interface {
	GetAccountMetrics(accountExternalID string, startDate, endDate time.Time) (*adsdomain.AccountMetrics, error)
	GetCampaignMetrics(accountExternalID string, startDate, endDate time.Time) ([]adsdomain.CampaignMetrics, error)
}

type AdsClient struct {
	Cfg        *config.Config
	HTTPClient *http.Client
}

func NewClient(cfg *config.Config) Client {
	return &AdsClient{
		Cfg: cfg,
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// doRequest executa uma requisição autenticada e decodifica o corpo em out
func (c *AdsClient) doRequest(url string, out any) error {
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("erro ao criar a requisição: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.Cfg.AdsPlatform.AccessToken)
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("erro ao fazer a requisição: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("erro ao ler o corpo da resposta: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		apiErr := &adsdomain.APIError{}
		if err := json.Unmarshal(body, apiErr); err == nil && apiErr.Message != "" {
			return apiErr
		}
		return fmt.Errorf("ads platform respondeu status %d", resp.StatusCode)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("erro ao decodificar JSON: %w", err)
	}

	return nil
}
