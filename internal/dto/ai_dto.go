package dto

type SummaryResponse struct {
	Summary string `json:"summary"`
}

type ImproveResponse struct {
	ImprovedContent string `json:"improvedContent"`
}

type TagsResponse struct {
	Tags []string `json:"tags"`
}
