package model

type ErrorResponse struct {
	Error string `json:"error"`
}

type PingResponse struct {
	Message string `json:"message"`
}

type RootResponse struct {
	Message  string            `json:"message"`
	Version  string            `json:"version"`
	Features []string          `json:"features"`
	Models   map[string]string `json:"models"`
}
