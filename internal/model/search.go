package model

// SearchFile is a document hit decorated with the coarse type label and a
// size alias the search UI expects.
type SearchFile struct {
	Document
	Type string `json:"type"`
	Size int64  `json:"size"`
}

// SearchResults groups folder and file hits for one search query.
type SearchResults struct {
	Folders []Folder     `json:"folders"`
	Files   []SearchFile `json:"files"`
}

// UploadProgress reports blob transfer progress. Total may be zero when the
// upstream size is unknown, in which case Percentage stays at zero while
// Loaded keeps incrementing.
type UploadProgress struct {
	Percentage float64 `json:"percentage"`
	Loaded     int64   `json:"loaded"`
	Total      int64   `json:"total"`
}
