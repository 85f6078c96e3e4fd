package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/citydigest/citydigest/config"
	"github.com/citydigest/citydigest/internal/apperrors"
	"github.com/citydigest/citydigest/internal/logger"
	"github.com/citydigest/citydigest/internal/models"
)

// APIClient talks to the weatherapi.com forecast endpoint
type APIClient struct {
	http    *http.Client
	baseURL string
	apiKey  string
}

// NewAPIClient returns nil when no api key is configured; callers treat a nil
// provider as "weather disabled".
func NewAPIClient(cfg config.WeatherConfig) *APIClient {
	if cfg.APIKey == "" {
		return nil
	}
	return &APIClient{
		http:    &http.Client{Timeout: cfg.Timeout},
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
	}
}

type apiResponse struct {
	Current struct {
		TempC      float64 `json:"temp_c"`
		Humidity   int     `json:"humidity"`
		PressureMB float64 `json:"pressure_mb"`
		WindKPH    float64 `json:"wind_kph"`
		Condition  struct {
			Text string `json:"text"`
		} `json:"condition"`
	} `json:"current"`
	Forecast struct {
		ForecastDay []struct {
			Hour []struct {
				TimeEpoch int64   `json:"time_epoch"`
				TempC     float64 `json:"temp_c"`
				Condition struct {
					Text string `json:"text"`
				} `json:"condition"`
			} `json:"hour"`
		} `json:"forecastday"`
	} `json:"forecast"`
}

// Forecast fetches current conditions and the hourly forecast, then reduces
// the hours to the four representative slots. After the local evening cutoff
// the slots come from tomorrow's hours.
func (c *APIClient) Forecast(ctx context.Context, loc models.Locality) (*Forecast, error) {
	params := url.Values{}
	params.Set("key", c.apiKey)
	params.Set("q", fmt.Sprintf("%f,%f", loc.Latitude, loc.Longitude))
	params.Set("days", "2")
	params.Set("lang", "ru")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.baseURL+"/forecast.json?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrWeatherUnavailable, err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		logger.Warn("weather fetch failed", "locality", loc.ID, "error", err)
		return nil, fmt.Errorf("%w: %v", apperrors.ErrWeatherUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		logger.Warn("weather api returned error", "locality", loc.ID, "status", resp.StatusCode)
		return nil, fmt.Errorf("%w: status %d", apperrors.ErrWeatherUnavailable, resp.StatusCode)
	}

	var data apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrWeatherUnavailable, err)
	}
	if len(data.Forecast.ForecastDay) == 0 {
		return nil, fmt.Errorf("%w: empty forecast", apperrors.ErrWeatherUnavailable)
	}

	zone, err := time.LoadLocation(loc.TimezoneID)
	if err != nil {
		zone = time.UTC
	}
	localNow := time.Now().In(zone)

	dayIdx := 0
	tomorrow := false
	if localNow.Hour() >= rolloverHour && len(data.Forecast.ForecastDay) > 1 {
		dayIdx = 1
		tomorrow = true
	}

	f := &Forecast{
		LocalityID:   loc.ID,
		LocalityName: loc.Name,
		CurrentTempC: data.Current.TempC,
		Condition:    data.Current.Condition.Text,
		Humidity:     data.Current.Humidity,
		PressureMB:   data.Current.PressureMB,
		WindKPH:      data.Current.WindKPH,
		Tomorrow:     tomorrow,
	}

	for _, h := range data.Forecast.ForecastDay[dayIdx].Hour {
		hour := time.Unix(h.TimeEpoch, 0).In(zone).Hour()
		for _, want := range slotHours {
			if hour == want {
				f.Slots = append(f.Slots, Slot{Hour: hour, TempC: h.TempC, Condition: h.Condition.Text})
			}
		}
	}

	return f, nil
}
