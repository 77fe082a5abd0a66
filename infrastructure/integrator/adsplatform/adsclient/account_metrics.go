package adsclient

import (
	"errors"
	"fmt"
	"net/url"
	"time"

	adsdomain "github.com/vfg2006/marketing-ops-api/infrastructure/integrator/adsplatform/domain"
)

type responseAccountMetrics struct {
	Data []adsdomain.AccountMetrics `json:"data"`
}

func (c *AdsClient) GetAccountMetrics(accountExternalID string, startDate, endDate time.Time) (*adsdomain.AccountMetrics, error) {
	params := url.Values{}
	params.Add("start_date", startDate.Format(time.DateOnly))
	params.Add("end_date", endDate.Format(time.DateOnly))

	requestURL := fmt.Sprintf(
		"%s/accounts/%s/metrics?%s",
		c.Cfg.AdsPlatform.URL,
		accountExternalID,
		params.Encode(),
	)

	var response responseAccountMetrics
	if err := c.doRequest(requestURL, &response); err != nil {
		return nil, err
	}

	if len(response.Data) == 0 {
		return nil, errors.New("no data found")
	}

	return &response.Data[0], nil
}
