// Package display turns a school's slot/content records into the payload a
// display device renders. Resolution is pure given its inputs: no store
// access, no mutation, and no failure path other than the recovered weather
// call.
package display

import (
	"context"
	"encoding/json"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/datatypes"

	"github.com/rebounder/signage_backend/internal/metrics"
	"github.com/rebounder/signage_backend/internal/models"
)

const (
	// slideshowDuration is the ad rotation interval in milliseconds.
	slideshowDuration = 10000

	// targetTimeLayout is the interchange format for countdown targets.
	targetTimeLayout = "2006-01-02T15:04:05"

	weatherUnavailableBody = "天気情報取得不可"
	noAdsBody              = "広告募集中"
	countdownUnsetBody     = "日時未設定"
	emergencyTheme         = "urgent"
)

// Provider fetches display-ready weather text for a coordinate.
type Provider interface {
	Current(ctx context.Context, lat, lon float64) (string, error)
}

// Payload is the device-ready document returned on every poll. It is
// ephemeral and recomputed each time.
type Payload struct {
	LayoutType int           `json:"layout_type"`
	SchoolName string        `json:"school_name"`
	Slots      []SlotPayload `json:"slots"`
}

type SlotPayload struct {
	Position    int                `json:"position"`
	ContentType models.ContentType `json:"content_type"`
	Content     map[string]any     `json:"content"`
}

type Resolver struct {
	hostURL string
	weather Provider
	lat     float64
	lon     float64
	log     *zap.Logger
}

func NewResolver(hostURL string, weather Provider, lat, lon float64, log *zap.Logger) *Resolver {
	if log == nil {
		log = zap.NewNop()
	}
	return &Resolver{hostURL: hostURL, weather: weather, lat: lat, lon: lon, log: log}
}

// Resolve builds the payload for one school. approvedAds must already be
// filtered to approved status and ordered by id; slots are evaluated
// independently in position order.
func (r *Resolver) Resolve(ctx context.Context, school *models.School, approvedAds []models.Ad, now time.Time) Payload {
	slots := make([]models.Slot, len(school.Slots))
	copy(slots, school.Slots)
	sort.Slice(slots, func(i, j int) bool { return slots[i].Position < slots[j].Position })

	out := Payload{
		LayoutType: school.LayoutType,
		SchoolName: school.Name,
		Slots:      make([]SlotPayload, 0, len(slots)),
	}
	for _, slot := range slots {
		var content map[string]any
		switch slot.ContentType {
		case models.ContentWeather:
			content = r.resolveWeather(ctx)
		case models.ContentAd:
			content = r.resolveAds(approvedAds)
		case models.ContentNotice, models.ContentBus, models.ContentTrain,
			models.ContentCountdown, models.ContentWBGT, models.ContentEmergency,
			models.ContentClubResult, models.ContentLostFound:
			content = r.resolveManual(slot, now)
		default:
			// Unknown type in the store; emit an empty slot rather than fail.
			content = map[string]any{}
		}
		out.Slots = append(out.Slots, SlotPayload{
			Position:    slot.Position,
			ContentType: slot.ContentType,
			Content:     content,
		})
	}
	return out
}

func (r *Resolver) resolveWeather(ctx context.Context) map[string]any {
	text, err := r.weather.Current(ctx, r.lat, r.lon)
	if err != nil {
		metrics.WeatherFetchFailures.Inc()
		r.log.Warn("weather fetch failed", zap.Error(err))
		text = weatherUnavailableBody
	}
	return map[string]any{"body": text}
}

func (r *Resolver) resolveAds(ads []models.Ad) map[string]any {
	if len(ads) == 0 {
		return map[string]any{"body": noAdsBody}
	}
	urls := make([]string, 0, len(ads))
	for _, ad := range ads {
		urls = append(urls, r.qualifyURL(ad.MediaURL))
	}
	return map[string]any{
		"slideshow": urls,
		"duration":  slideshowDuration,
	}
}

func (r *Resolver) resolveManual(slot models.Slot, now time.Time) map[string]any {
	content := map[string]any{}
	c := firstContent(slot)
	if c == nil {
		return content
	}

	// Visibility window check short-circuits everything else for this cycle.
	if (c.StartAt != nil && c.StartAt.After(now)) || (c.EndAt != nil && c.EndAt.Before(now)) {
		content["body"] = ""
		return content
	}

	style := parseStyle(c.Style, r.log)
	slides := r.qualifiedSlides(style)
	if len(slides) > 0 {
		content["slides"] = slides
	}

	// Legacy single-value fields are always populated for older clients.
	content["body"] = c.Body
	content["theme"] = c.Theme

	img, _ := style["rendered_image_url"].(string)
	if len(slides) == 0 && img != "" && renderedImageAllowed(slot.ContentType) {
		content["media_url"] = r.qualifyURL(img)
		content["body"] = ""
	} else if c.MediaURL != "" {
		content["media_url"] = r.qualifyURL(c.MediaURL)
	}

	switch slot.ContentType {
	case models.ContentCountdown:
		if c.EndAt != nil {
			content["target_time"] = c.EndAt.Format(targetTimeLayout)
		} else {
			content["body"] = countdownUnsetBody
		}
	case models.ContentWBGT:
		// Body carries the risk-level token; passed through verbatim.
		content["level"] = c.Body
	case models.ContentEmergency:
		content["theme"] = emergencyTheme
	}
	return content
}

// firstContent returns the lowest-id content row of a slot. Contents are 1:1
// by convention only, so several rows may exist; the first one wins.
func firstContent(slot models.Slot) *models.Content {
	var first *models.Content
	for i := range slot.Contents {
		c := &slot.Contents[i]
		if first == nil || c.ID < first.ID {
			first = c
		}
	}
	return first
}

// parseStyle decodes the stored style map, treating malformed JSON as an
// empty map rather than an error.
func parseStyle(raw datatypes.JSON, log *zap.Logger) map[string]any {
	if len(raw) == 0 {
		return map[string]any{}
	}
	var style map[string]any
	if err := json.Unmarshal(raw, &style); err != nil {
		log.Warn("ignoring malformed style", zap.Error(err))
		return map[string]any{}
	}
	if style == nil {
		return map[string]any{}
	}
	return style
}

// qualifiedSlides extracts the ordered slide list, qualifying each slide's
// rendered_image_url. Non-map entries are dropped.
func (r *Resolver) qualifiedSlides(style map[string]any) []map[string]any {
	raw, ok := style["slides"].([]any)
	if !ok {
		return nil
	}
	slides := make([]map[string]any, 0, len(raw))
	for _, entry := range raw {
		slide, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		if img, ok := slide["rendered_image_url"].(string); ok && img != "" {
			slide["rendered_image_url"] = r.qualifyURL(img)
		}
		slides = append(slides, slide)
	}
	return slides
}

// renderedImageAllowed reports whether a single rendered image may replace
// the text body for this content type.
func renderedImageAllowed(t models.ContentType) bool {
	switch t {
	case models.ContentWeather, models.ContentAd, models.ContentCountdown:
		return false
	}
	return true
}

// qualifyURL prefixes site-relative paths with the public host URL; absolute
// URLs pass through unchanged.
func (r *Resolver) qualifyURL(v string) string {
	if strings.HasPrefix(v, "http://") || strings.HasPrefix(v, "https://") {
		return v
	}
	return r.hostURL + v
}
