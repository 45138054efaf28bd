package entities

import "time"

// Asset is one row of app_assets. The binary itself lives in object storage;
// the row only keeps bucket/path bookkeeping.
type Asset struct {
	ID          string    `db:"id" json:"id"`
	AppType     string    `db:"app_type" json:"app_type"`
	AssetType   string    `db:"asset_type" json:"asset_type"`
	AssetName   string    `db:"asset_name" json:"asset_name"`
	AssetPath   string    `db:"asset_path" json:"asset_path"`
	BucketName  string    `db:"bucket_name" json:"bucket_name"`
	Description *string   `db:"description" json:"description"`
	IsActive    bool      `db:"is_active" json:"is_active"`
	FileSize    *int64    `db:"file_size" json:"file_size"`
	MimeType    *string   `db:"mime_type" json:"mime_type"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`

	// PublicURL is composed from the storage base URL, not stored.
	PublicURL string `db:"-" json:"public_url"`
}
