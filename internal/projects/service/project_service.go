package service

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"sort"
	"strings"

	"github.com/portfolio-website/portfolio-server/internal/projects/domain"
)

// ProjectStore is the read-only view of the content store.
type ProjectStore interface {
	List(ctx context.Context) ([]domain.Project, error)
	Get(ctx context.Context, id string) (*domain.Project, error)
}

// ContentRenderer turns Markdown into a sanitized HTML fragment.
type ContentRenderer interface {
	Render(source string) string
}

// ImageResolver maps a stored image reference to an absolute URL.
type ImageResolver interface {
	Resolve(ref string) string
}

// ProjectService composes project views from the store, the renderer and
// the image resolver. Every call works on fresh data; nothing is cached.
type ProjectService struct {
	store    ProjectStore
	renderer ContentRenderer
	images   ImageResolver
}

// NewProjectService creates a new ProjectService
func NewProjectService(store ProjectStore, renderer ContentRenderer, images ImageResolver) *ProjectService {
	return &ProjectService{
		store:    store,
		renderer: renderer,
		images:   images,
	}
}

// ListProjects returns summary views for every project. Long descriptions
// are not rendered for the listing.
func (s *ProjectService) ListProjects(ctx context.Context) ([]domain.ProjectView, error) {
	items, err := s.store.List(ctx)
	if err != nil {
		return []domain.ProjectView{}, classify(err)
	}

	sortProjects(items)

	views := make([]domain.ProjectView, 0, len(items))
	for _, p := range items {
		views = append(views, domain.ProjectView{Project: s.withImage(p)})
	}
	return views, nil
}

// GetProject returns the full view of one project, or an error matching
// domain.ErrProjectNotFound or domain.ErrStoreUnavailable.
func (s *ProjectService) GetProject(ctx context.Context, id string) (*domain.ProjectView, error) {
	p, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, classify(err)
	}
	if p == nil {
		return nil, domain.ErrProjectNotFound
	}

	return &domain.ProjectView{
		Project:             s.withImage(*p),
		LongDescriptionHTML: template.HTML(s.renderer.Render(p.LongDescriptionMD)),
	}, nil
}

func (s *ProjectService) withImage(p domain.Project) domain.Project {
	if p.ImageURL != "" {
		p.ImageURL = s.images.Resolve(p.ImageURL)
	}
	return p
}

// classify makes sure callers only ever see the two store outcomes.
func classify(err error) error {
	if errors.Is(err, domain.ErrProjectNotFound) || errors.Is(err, domain.ErrStoreUnavailable) {
		return err
	}
	return fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
}

// sortProjects orders by the optional "order" field, then title. Without any
// order field the store order is kept.
func sortProjects(items []domain.Project) {
	ordered := false
	for _, p := range items {
		if p.Order != nil {
			ordered = true
			break
		}
	}
	if !ordered {
		return
	}

	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i], items[j]
		switch {
		case a.Order != nil && b.Order == nil:
			return true
		case a.Order == nil && b.Order != nil:
			return false
		case a.Order != nil && *a.Order != *b.Order:
			return *a.Order < *b.Order
		}
		return strings.ToLower(a.Title) < strings.ToLower(b.Title)
	})
}
