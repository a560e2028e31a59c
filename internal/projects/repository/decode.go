package repository

import (
	"fmt"
	"math"
	"strings"

	"github.com/portfolio-website/portfolio-server/internal/projects/domain"
)

// Field names used in the project documents.
const (
	fieldTitle             = "title"
	fieldSummary           = "summary"
	fieldImageURL          = "image_url"
	fieldLongDescriptionMD = "long_description_md"
	fieldGitHubURL         = "github_url"
	fieldLiveURL           = "live_url"
	fieldTags              = "tags"
	fieldOrder             = "order"
)

// ProjectFromFields interprets an untyped document. Missing or mistyped
// fields become zero values, so a document never fails to decode.
func ProjectFromFields(id string, data map[string]interface{}) domain.Project {
	return domain.Project{
		ID:                id,
		Title:             stringField(data, fieldTitle),
		Summary:           stringField(data, fieldSummary),
		ImageURL:          strings.TrimSpace(stringField(data, fieldImageURL)),
		LongDescriptionMD: stringField(data, fieldLongDescriptionMD),
		GitHubURL:         strings.TrimSpace(stringField(data, fieldGitHubURL)),
		LiveURL:           strings.TrimSpace(stringField(data, fieldLiveURL)),
		Tags:              stringsField(data, fieldTags),
		Order:             intField(data, fieldOrder),
	}
}

func stringField(data map[string]interface{}, key string) string {
	switch v := data[key].(type) {
	case string:
		return v
	case nil:
		return ""
	case fmt.Stringer:
		return v.String()
	default:
		return ""
	}
}

func stringsField(data map[string]interface{}, key string) []string {
	var out []string
	switch v := data[key].(type) {
	case []interface{}:
		for _, item := range v {
			if s, ok := item.(string); ok && strings.TrimSpace(s) != "" {
				out = append(out, strings.TrimSpace(s))
			}
		}
	case []string:
		for _, s := range v {
			if strings.TrimSpace(s) != "" {
				out = append(out, strings.TrimSpace(s))
			}
		}
	case string:
		for _, s := range strings.Split(v, ",") {
			if s = strings.TrimSpace(s); s != "" {
				out = append(out, s)
			}
		}
	}
	return out
}

func intField(data map[string]interface{}, key string) *int {
	var n int
	switch v := data[key].(type) {
	case int64:
		n = int(v)
	case int:
		n = v
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil
		}
		n = int(v)
	default:
		return nil
	}
	return &n
}
