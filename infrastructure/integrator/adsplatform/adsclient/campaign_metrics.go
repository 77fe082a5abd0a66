package adsclient

import (
	"fmt"
	"net/url"
	"time"

	adsdomain "github.com/vfg2006/marketing-ops-api/infrastructure/integrator/adsplatform/domain"
)

type responseCampaignMetrics struct {
	Data []adsdomain.CampaignMetrics `json:"data"`
}

func (c *AdsClient) GetCampaignMetrics(accountExternalID string, startDate, endDate time.Time) ([]adsdomain.CampaignMetrics, error) {
	params := url.Values{}
	params.Add("start_date", startDate.Format(time.DateOnly))
	params.Add("end_date", endDate.Format(time.DateOnly))

	requestURL := fmt.Sprintf(
		"%s/accounts/%s/campaigns/metrics?%s",
		c.Cfg.AdsPlatform.URL,
		accountExternalID,
		params.Encode(),
	)

	var response responseCampaignMetrics
	if err := c.doRequest(requestURL, &response); err != nil {
		return nil, err
	}

	return response.Data, nil
}
