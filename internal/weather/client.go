// Package weather wraps the Open-Meteo current-weather API behind a small
// client returning a display-ready string. Failures are expected and handled
// by the caller; this package never substitutes a fallback itself.
package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

const fetchTimeout = 5 * time.Second

// wmoConditions maps WMO weather codes to the condition labels shown on
// displays. Codes outside the map render as 不明.
var wmoConditions = map[int]string{
	0: "晴れ", 1: "晴れ", 2: "曇り", 3: "曇り",
	45: "霧", 48: "霧",
	51: "小雨", 53: "小雨", 55: "小雨",
	61: "雨", 63: "雨", 65: "雨",
	80: "雨", 81: "雨", 82: "雨",
	95: "雷雨",
}

type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: fetchTimeout},
	}
}

type forecastResponse struct {
	CurrentWeather struct {
		Temperature float64 `json:"temperature"`
		WeatherCode int     `json:"weathercode"`
	} `json:"current_weather"`
}

// Current fetches the current weather at the given coordinate and formats it
// for display.
func (c *Client) Current(ctx context.Context, lat, lon float64) (string, error) {
	q := url.Values{}
	q.Set("latitude", strconv.FormatFloat(lat, 'f', -1, 64))
	q.Set("longitude", strconv.FormatFloat(lon, 'f', -1, 64))
	q.Set("current_weather", "true")
	q.Set("timezone", "Asia/Tokyo")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return "", err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("weather api returned status %d", resp.StatusCode)
	}

	var fc forecastResponse
	if err := json.NewDecoder(resp.Body).Decode(&fc); err != nil {
		return "", err
	}

	status, ok := wmoConditions[fc.CurrentWeather.WeatherCode]
	if !ok {
		status = "不明"
	}
	temp := strconv.FormatFloat(fc.CurrentWeather.Temperature, 'f', -1, 64)
	return fmt.Sprintf("【現在の天気】\n%s\n気温: %s℃", status, temp), nil
}
