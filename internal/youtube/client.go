package youtube

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const (
	searchURL = "https://www.googleapis.com/youtube/v3/search"
	videosURL = "https://www.googleapis.com/youtube/v3/videos"

	userAgent = "SocratesTenisShorts/1.0"
)

// Client is a thin wrapper over the YouTube Data API v3. One best-effort
// call per request, no retries, no pagination.
type Client struct {
	apiKey     string
	regionCode string
	language   string
	httpClient *http.Client
}

func NewClient(apiKey string, regionCode string, language string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 12 * time.Second
	}

	return &Client{
		apiKey:     apiKey,
		regionCode: regionCode,
		language:   language,
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *Client) RegionCode() string {
	return c.regionCode
}

type Thumbnail struct {
	URL string `json:"url"`
}

type Snippet struct {
	Title        string               `json:"title"`
	ChannelTitle string               `json:"channelTitle"`
	PublishedAt  string               `json:"publishedAt"`
	Thumbnails   map[string]Thumbnail `json:"thumbnails"`
}

type ContentRating struct {
	YTRating string `json:"ytRating"`
}

type RegionRestriction struct {
	Blocked []string `json:"blocked"`
	Allowed []string `json:"allowed"`
}

type ContentDetails struct {
	Duration          string            `json:"duration"`
	ContentRating     ContentRating     `json:"contentRating"`
	RegionRestriction RegionRestriction `json:"regionRestriction"`
}

type VideoStatus struct {
	Embeddable    bool   `json:"embeddable"`
	PrivacyStatus string `json:"privacyStatus"`
}

type Player struct {
	EmbedHTML string `json:"embedHtml"`
}

type Video struct {
	ID             string         `json:"id"`
	Snippet        Snippet        `json:"snippet"`
	ContentDetails ContentDetails `json:"contentDetails"`
	Status         VideoStatus    `json:"status"`
	Player         Player         `json:"player"`
}

type searchResponse struct {
	Items []struct {
		ID struct {
			VideoID string `json:"videoId"`
		} `json:"id"`
	} `json:"items"`
}

type videosResponse struct {
	Items []Video `json:"items"`
}

// SearchVideoIDs looks up short, embeddable, syndicated videos for the query
// and returns their ids deduplicated in result order. videoSyndicated=true
// matters: it keeps out videos that refuse to play outside youtube.com.
func (c *Client) SearchVideoIDs(ctx context.Context, query string, maxResults int) ([]string, error) {
	params := url.Values{}
	params.Set("key", c.apiKey)
	params.Set("part", "snippet")
	params.Set("type", "video")
	params.Set("q", query)
	params.Set("maxResults", strconv.Itoa(maxResults))
	params.Set("safeSearch", "strict")
	params.Set("videoDuration", "short")
	params.Set("regionCode", c.regionCode)
	params.Set("relevanceLanguage", c.language)
	params.Set("order", "relevance")
	params.Set("videoEmbeddable", "true")
	params.Set("videoSyndicated", "true")

	var parsed searchResponse
	if err := c.getJSON(ctx, searchURL, params, &parsed); err != nil {
		return nil, fmt.Errorf("youtube search: %w", err)
	}

	seen := map[string]struct{}{}
	ids := make([]string, 0, len(parsed.Items))
	for _, item := range parsed.Items {
		vid := item.ID.VideoID
		if vid == "" {
			continue
		}
		if _, dup := seen[vid]; dup {
			continue
		}
		seen[vid] = struct{}{}
		ids = append(ids, vid)
	}

	return ids, nil
}

// FetchVideos loads detail records for up to 50 ids. The player part is
// requested so callers can verify an embed fragment actually exists.
func (c *Client) FetchVideos(ctx context.Context, videoIDs []string) ([]Video, error) {
	if len(videoIDs) == 0 {
		return nil, nil
	}
	if len(videoIDs) > 50 {
		videoIDs = videoIDs[:50]
	}

	params := url.Values{}
	params.Set("key", c.apiKey)
	params.Set("part", "snippet,contentDetails,status,player")
	params.Set("id", strings.Join(videoIDs, ","))
	params.Set("maxResults", "50")

	var parsed videosResponse
	if err := c.getJSON(ctx, videosURL, params, &parsed); err != nil {
		return nil, fmt.Errorf("youtube videos: %w", err)
	}

	return parsed.Items, nil
}

func (c *Client) getJSON(ctx context.Context, endpoint string, params url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	return json.NewDecoder(resp.Body).Decode(out)
}
