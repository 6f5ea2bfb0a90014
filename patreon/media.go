package patreon

import "time"

// Media is an uploaded file. ImageURLs, Metadata and UploadParameters have
// no fixed shape and are passed through as decoded.
type Media struct {
	ID                string    `json:"id" patreon:"optional"`
	CreatedAt         time.Time `json:"created_at"`
	DownloadURL       string    `json:"download_url"`
	FileName          string    `json:"file_name"`
	ImageURLs         any       `json:"image_urls" patreon:"optional"`
	Metadata          any       `json:"metadata" patreon:"optional"`
	Mimetype          string    `json:"mimetype"`
	OwnerID           string    `json:"owner_id"`
	OwnerRelationship string    `json:"owner_relationship"`
	OwnerType         string    `json:"owner_type"`
	SizeBytes         int64     `json:"size_bytes"`
	State             string    `json:"state"`
	UploadExpiresAt   time.Time `json:"upload_expires_at"`
	UploadParameters  any       `json:"upload_parameters" patreon:"optional"`
	UploadURL         string    `json:"upload_url"`
}

func (Media) kind() Kind { return KindMedia }
func (m Media) id() string { return m.ID }

func (m *Media) UnmarshalJSON(data []byte) error {
	return unmarshal(data, m)
}
