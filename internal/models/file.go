package models

// UploadedFile is a proof selected by the employee, held only until it is stored.
type UploadedFile struct {
	Name     string
	MimeType string
	Content  []byte
}

// UploadResult is what the store hands back for a stored proof. Key is the
// identifier reserved for the bill the proof belongs to.
type UploadResult struct {
	FileURL  string `json:"fileUrl"`
	FileName string `json:"fileName"`
	Key      string `json:"key"`
}
