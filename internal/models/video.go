package models

import "time"

type Video struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	MediaRef  string    `json:"media_ref"`
	CreatedAt time.Time `json:"created_at"`
}

type VideoDetail struct {
	Video
	LoveCount int  `json:"love_count"`
	Loved     bool `json:"loved"`
}
