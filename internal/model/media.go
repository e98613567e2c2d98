package model

import "time"

// MediaAsset references externally hosted content; no bytes are stored here.
type MediaAsset struct {
	ID        int       `db:"id"         json:"id"`
	TenantID  int       `db:"tenant_id"  json:"tenantId"`
	Filename  string    `db:"filename"   json:"filename"`
	URL       string    `db:"url"        json:"url"`
	MimeType  string    `db:"mime_type"  json:"mimeType"`
	MediaType string    `db:"media_type" json:"mediaType"`
	SizeBytes int64     `db:"size_bytes" json:"sizeBytes"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}
