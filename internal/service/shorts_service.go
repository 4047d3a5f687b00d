package service

import (
	"context"
	"strings"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"tennis-academy-api/internal/model"
	"tennis-academy-api/internal/youtube"
)

// shortsCacheVersion is part of every cache key. Bump it when the
// filtering or embed logic changes so stale batches stop being served.
const shortsCacheVersion = "v3"

const maxShortDurationSeconds = 180

// Rotation pool for the keyword of the hour. The English entries pull in
// noticeably better drill footage than the Portuguese ones.
var shortsKeywords = []string{
	"saque tenis",
	"voleio tenis",
	"forehand tenis",
	"backhand tenis",
	"slice tenis",
	"topspin tenis",
	"footwork tenis",
	"split step tenis",
	"devolucao de saque tenis",
	"movimentacao lateral tenis",
	"tennis serve drill shorts",
	"tennis volley drill shorts",
	"tennis footwork drill shorts",
	"tennis return drill shorts",
}

type videoSource interface {
	SearchVideoIDs(ctx context.Context, query string, maxResults int) ([]string, error)
	FetchVideos(ctx context.Context, videoIDs []string) ([]youtube.Video, error)
	RegionCode() string
}

// ShortsService serves the trending shorts feed: a deterministic keyword
// rotation, a process-local TTL cache, and one best-effort upstream fetch
// per cache miss. Concurrent misses for the same keyword may both hit the
// upstream; the call is idempotent so nothing deduplicates them.
type ShortsService struct {
	source videoSource
	cache  *expirable.LRU[string, []model.ShortsItem]
	clock  func() time.Time
	loc    *time.Location
}

// NewShortsService builds the feed service. A nil source means no API key
// is configured; requests will fail with ErrMissingAPIKey instead of
// silently returning nothing.
func NewShortsService(source videoSource, cacheSize int, cacheTTL time.Duration) *ShortsService {
	if cacheSize <= 0 {
		cacheSize = 64
	}
	if cacheTTL <= 0 {
		cacheTTL = time.Hour
	}

	return &ShortsService{
		source: source,
		cache:  expirable.NewLRU[string, []model.ShortsItem](cacheSize, nil, cacheTTL),
		clock:  time.Now,
		loc:    saoPauloLocation(),
	}
}

func saoPauloLocation() *time.Location {
	loc, err := time.LoadLocation("America/Sao_Paulo")
	if err != nil {
		// Containers without tzdata: Sao Paulo stopped observing DST in 2019.
		return time.FixedZone("-03", -3*60*60)
	}
	return loc
}

// KeywordOfTheHour is a pure function of the wall clock: every caller in
// the same Sao Paulo hour sees the same keyword, so the cache actually
// gets hits.
func (s *ShortsService) KeywordOfTheHour() string {
	now := s.clock().In(s.loc)
	hourIndex := now.Year()*1000000 + int(now.Month())*10000 + now.Day()*100 + now.Hour()
	return shortsKeywords[hourIndex%len(shortsKeywords)]
}

func (s *ShortsService) GetShorts(ctx context.Context, keyword string, limit int) (model.ShortsResponse, error) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		keyword = s.KeywordOfTheHour()
	}

	if limit < 1 {
		limit = 1
	}
	if limit > 16 {
		limit = 16
	}

	cacheKey := "k:" + keyword + ":" + shortsCacheVersion
	if items, ok := s.cache.Get(cacheKey); ok {
		return model.ShortsResponse{
			Keyword:   keyword,
			UpdatedAt: s.clock().UTC(),
			Items:     truncateItems(items, limit),
		}, nil
	}

	if s.source == nil {
		return model.ShortsResponse{}, model.ErrMissingAPIKey
	}

	// Oversized search pool: the syndicated/embeddable/player/duration
	// filters throw most candidates away.
	maxResults := limit * 8
	if maxResults < 25 {
		maxResults = 25
	}
	if maxResults > 50 {
		maxResults = 50
	}

	videoIDs, err := s.source.SearchVideoIDs(ctx, keyword, maxResults)
	if err != nil {
		return model.ShortsResponse{}, err
	}

	videos, err := s.source.FetchVideos(ctx, videoIDs)
	if err != nil {
		return model.ShortsResponse{}, err
	}

	region := s.source.RegionCode()
	items := make([]model.ShortsItem, 0, limit)
	for _, v := range videos {
		if !isEmbeddableVideo(v, region) {
			continue
		}

		if item, ok := buildShortsItem(keyword, v); ok {
			items = append(items, item)
		}

		if len(items) >= limit {
			break
		}
	}

	s.cache.Add(cacheKey, items)

	return model.ShortsResponse{
		Keyword:   keyword,
		UpdatedAt: s.clock().UTC(),
		Items:     items,
	}, nil
}

func truncateItems(items []model.ShortsItem, limit int) []model.ShortsItem {
	if len(items) <= limit {
		return items
	}
	return items[:limit]
}

// isEmbeddableVideo applies the filters that keep iframe playback from
// failing: embeddable and public, not age restricted, not blocked for the
// configured region, and with an actual embed fragment present.
func isEmbeddableVideo(v youtube.Video, region string) bool {
	if !v.Status.Embeddable {
		return false
	}

	privacy := strings.ToLower(v.Status.PrivacyStatus)
	if privacy != "" && privacy != "public" {
		return false
	}

	if v.ContentDetails.ContentRating.YTRating == "ytAgeRestricted" {
		return false
	}

	for _, blocked := range v.ContentDetails.RegionRestriction.Blocked {
		if blocked == region {
			return false
		}
	}

	if allowed := v.ContentDetails.RegionRestriction.Allowed; len(allowed) > 0 {
		found := false
		for _, a := range allowed {
			if a == region {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	if strings.TrimSpace(v.Player.EmbedHTML) == "" {
		return false
	}

	return true
}

func buildShortsItem(keyword string, v youtube.Video) (model.ShortsItem, bool) {
	if v.ID == "" {
		return model.ShortsItem{}, false
	}

	seconds, ok := youtube.ParseDuration(v.ContentDetails.Duration)
	if !ok || seconds > maxShortDurationSeconds {
		return model.ShortsItem{}, false
	}

	var publishedAt *time.Time
	if raw := v.Snippet.PublishedAt; raw != "" {
		if t, err := time.Parse(time.RFC3339, raw); err == nil {
			utc := t.UTC()
			publishedAt = &utc
		}
	}

	return model.ShortsItem{
		Keyword:         keyword,
		VideoID:         v.ID,
		Title:           truncateRunes(strings.TrimSpace(v.Snippet.Title), 160),
		Channel:         truncateRunes(strings.TrimSpace(v.Snippet.ChannelTitle), 120),
		PublishedAt:     publishedAt,
		Thumb:           pickThumbnail(v.Snippet.Thumbnails),
		WatchURL:        "https://www.youtube.com/watch?v=" + v.ID,
		EmbedURL:        "https://www.youtube.com/embed/" + v.ID,
		DurationSeconds: seconds,
	}, true
}

// pickThumbnail prefers the highest quality https thumbnail available.
func pickThumbnail(thumbs map[string]youtube.Thumbnail) string {
	for _, key := range []string{"maxres", "standard", "high", "medium", "default"} {
		if t, ok := thumbs[key]; ok && strings.HasPrefix(t.URL, "https://") {
			return t.URL
		}
	}
	return ""
}

func truncateRunes(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
