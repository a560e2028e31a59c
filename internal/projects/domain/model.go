package domain

import "html/template"

// Project is a portfolio entry as stored in the document collection.
// Records are edited outside this service; it only reads them.
type Project struct {
	ID                string   `json:"id"`
	Title             string   `json:"title"`
	Summary           string   `json:"summary"`
	ImageURL          string   `json:"image_url,omitempty"`
	LongDescriptionMD string   `json:"long_description_md,omitempty"`
	GitHubURL         string   `json:"github_url,omitempty"`
	LiveURL           string   `json:"live_url,omitempty"`
	Tags              []string `json:"tags,omitempty"`
	Order             *int     `json:"order,omitempty"`
}

// ProjectView is built per request from a Project. ImageURL is absolute or
// empty, and LongDescriptionHTML has already been sanitized.
type ProjectView struct {
	Project
	LongDescriptionHTML template.HTML `json:"long_description_html,omitempty"`
}

// HasImage reports whether the view should show an image at all.
func (v ProjectView) HasImage() bool {
	return v.ImageURL != ""
}
