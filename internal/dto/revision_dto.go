package dto

import "time"

type RevisionDto struct {
	Id        int64     `json:"id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

type RevisionMetadataDto struct {
	Id        int64     `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	Length    int       `json:"length"`
	AuthorId  *string   `json:"author_id"`
	Title     string    `json:"title"`
}
