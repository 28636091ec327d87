package dto

type TimestampResponse struct {
	Unix int64  `json:"unix"`
	UTC  string `json:"utc"`
}

type WhoAmIResponse struct {
	IPAddress string `json:"ipaddress"`
	Language  string `json:"language"`
	Software  string `json:"software"`
}

type FileMetadataResponse struct {
	Name string `json:"name"`
	Type string `json:"type"`
	Size int64  `json:"size"`
}
