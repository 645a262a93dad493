package models

// DataResponse is the body of GET /data.
type DataResponse struct {
	Data        []TaskView  `json:"data"`
	Collections Collections `json:"collections"`
}

type Collections struct {
	Links []Link `json:"links"`
}

// ActionResponse is the envelope every write answers with.
type ActionResponse struct {
	Success   bool  `json:"success"`
	RequestID int64 `json:"requestId,omitempty"`
}
