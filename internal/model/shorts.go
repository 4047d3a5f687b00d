package model

import "time"

type ShortsItem struct {
	Keyword         string     `json:"keyword"`
	VideoID         string     `json:"video_id"`
	Title           string     `json:"title"`
	Channel         string     `json:"channel"`
	PublishedAt     *time.Time `json:"published_at"`
	Thumb           string     `json:"thumb,omitempty"`
	WatchURL        string     `json:"watch_url"`
	EmbedURL        string     `json:"embed_url"`
	DurationSeconds int        `json:"duration_seconds"`
}

type ShortsResponse struct {
	Keyword   string       `json:"keyword"`
	UpdatedAt time.Time    `json:"updated_at"`
	Items     []ShortsItem `json:"items"`
}
