package model

// Group is a topic label together with its member videos and their channels.
type Group struct {
	Label    string    `json:"label"`
	Videos   []Video   `json:"videos"`
	Channels []Channel `json:"channels"`
}

// IngestRequest is the API request body for POST /api/videos/ingest.
type IngestRequest struct {
	URLs []string `json:"urls"`
}
