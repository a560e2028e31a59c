package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/portfolio-website/portfolio-server/internal/projects/domain"
)

func TestProjectFromFields(t *testing.T) {
	t.Run("decodes all known fields", func(t *testing.T) {
		p := ProjectFromFields("abc", map[string]interface{}{
			"title":               "Weather Bot",
			"summary":             "Posts the forecast",
			"image_url":           " bot.png ",
			"long_description_md": "# Bot",
			"github_url":          "https://github.com/example/bot",
			"tags":                []interface{}{"go", " ", "slack", 3},
			"order":               int64(2),
			"unrelated":           true,
		})

		assert.Equal(t, "abc", p.ID)
		assert.Equal(t, "Weather Bot", p.Title)
		assert.Equal(t, "Posts the forecast", p.Summary)
		assert.Equal(t, "bot.png", p.ImageURL)
		assert.Equal(t, "# Bot", p.LongDescriptionMD)
		assert.Equal(t, "https://github.com/example/bot", p.GitHubURL)
		assert.Equal(t, []string{"go", "slack"}, p.Tags)
		require.NotNil(t, p.Order)
		assert.Equal(t, 2, *p.Order)
	})

	t.Run("mistyped fields become zero values", func(t *testing.T) {
		p := ProjectFromFields("x", map[string]interface{}{
			"title":     42,
			"image_url": nil,
			"order":     "first",
		})

		assert.Equal(t, "x", p.ID)
		assert.Empty(t, p.Title)
		assert.Empty(t, p.ImageURL)
		assert.Nil(t, p.Order)
		assert.Nil(t, p.Tags)
	})

	t.Run("comma separated tags", func(t *testing.T) {
		p := ProjectFromFields("x", map[string]interface{}{"tags": "go, gin ,firestore"})
		assert.Equal(t, []string{"go", "gin", "firestore"}, p.Tags)
	})

	t.Run("float order", func(t *testing.T) {
		p := ProjectFromFields("x", map[string]interface{}{"order": 3.0})
		require.NotNil(t, p.Order)
		assert.Equal(t, 3, *p.Order)
	})

	t.Run("nil document", func(t *testing.T) {
		p := ProjectFromFields("x", nil)
		assert.Equal(t, domain.Project{ID: "x"}, p)
	})
}

func TestUnavailableRepository(t *testing.T) {
	repo := UnavailableRepository{Cause: errors.New("no credentials")}

	_, err := repo.List(context.Background())
	assert.ErrorIs(t, err, domain.ErrStoreUnavailable)
	assert.Contains(t, err.Error(), "no credentials")

	_, err = repo.Get(context.Background(), "abc")
	assert.ErrorIs(t, err, domain.ErrStoreUnavailable)
	assert.NotErrorIs(t, err, domain.ErrProjectNotFound)
}
