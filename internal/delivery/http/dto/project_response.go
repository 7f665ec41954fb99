package dto

import "mentorlink/internal/domain/project"

// ProjectResponse carries the derived progress percentage alongside the
// stored fields.
type ProjectResponse struct {
	project.Project
	Progress int `json:"progress"`
}

func NewProjectResponse(p project.Project) ProjectResponse {
	return ProjectResponse{Project: p, Progress: p.Progress()}
}

func NewProjectListResponse(projects []project.Project) []ProjectResponse {
	out := make([]ProjectResponse, 0, len(projects))
	for _, p := range projects {
		out = append(out, NewProjectResponse(p))
	}
	return out
}
