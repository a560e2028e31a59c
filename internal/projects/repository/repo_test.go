package repository

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/portfolio-website/portfolio-server/internal/projects/domain"
)

func TestReadError(t *testing.T) {
	tests := []struct {
		name    string
		exists  bool
		err     error
		want    error
		wantNil bool
	}{
		{name: "found", exists: true, wantNil: true},
		{name: "missing document", exists: false, want: domain.ErrProjectNotFound},
		{name: "grpc not found", err: status.Error(codes.NotFound, "no such document"), want: domain.ErrProjectNotFound},
		{name: "grpc unavailable", err: status.Error(codes.Unavailable, "connection reset"), want: domain.ErrStoreUnavailable},
		{name: "permission denied", err: status.Error(codes.PermissionDenied, "bad credentials"), want: domain.ErrStoreUnavailable},
		{name: "deadline", err: context.DeadlineExceeded, want: domain.ErrStoreUnavailable},
		{name: "plain error", exists: true, err: errors.New("boom"), want: domain.ErrStoreUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := readError("portfolio_projects/abc", tt.exists, tt.err)
			if tt.wantNil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.want)
			if errors.Is(tt.want, domain.ErrStoreUnavailable) {
				assert.NotErrorIs(t, err, domain.ErrProjectNotFound)
				assert.Contains(t, err.Error(), "portfolio_projects/abc")
			}
		})
	}
}

// TestProjectRepository_Emulator runs against the Firestore emulator when
// FIRESTORE_EMULATOR_HOST is set.
func TestProjectRepository_Emulator(t *testing.T) {
	if os.Getenv("FIRESTORE_EMULATOR_HOST") == "" {
		t.Skip("FIRESTORE_EMULATOR_HOST not set")
	}

	ctx := context.Background()
	client, err := firestore.NewClient(ctx, "demo-portfolio")
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	collection := "projects_" + uuid.NewString()
	_, err = client.Collection(collection).Doc("weather-bot").Set(ctx, map[string]interface{}{
		"title":   "Weather Bot",
		"summary": "Posts the forecast",
		"tags":    []string{"go"},
	})
	require.NoError(t, err)

	repo := NewProjectRepository(client, collection, 5*time.Second)

	t.Run("get", func(t *testing.T) {
		p, err := repo.Get(ctx, "weather-bot")
		require.NoError(t, err)
		assert.Equal(t, "Weather Bot", p.Title)
		assert.Equal(t, []string{"go"}, p.Tags)
	})

	t.Run("missing id", func(t *testing.T) {
		_, err := repo.Get(ctx, "nope")
		assert.ErrorIs(t, err, domain.ErrProjectNotFound)
	})

	t.Run("path-like id", func(t *testing.T) {
		_, err := repo.Get(ctx, "a/b")
		assert.ErrorIs(t, err, domain.ErrProjectNotFound)
	})

	t.Run("list", func(t *testing.T) {
		items, err := repo.List(ctx)
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, "weather-bot", items[0].ID)
	})

	t.Run("ping", func(t *testing.T) {
		assert.NoError(t, repo.Ping(ctx))
	})
}
