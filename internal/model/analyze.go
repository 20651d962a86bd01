package model

type AnalyzeImageResponse struct {
	Description string `json:"description"`
	Filename    string `json:"filename"`
	ImageSize   [2]int `json:"image_size"`
	ModelUsed   string `json:"model_used"`
}
