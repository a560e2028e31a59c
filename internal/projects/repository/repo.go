package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/portfolio-website/portfolio-server/internal/projects/domain"
)

const defaultTimeout = 5 * time.Second

// ProjectRepository reads project documents from a Firestore collection.
// The client is opened once at startup and shared by all requests.
type ProjectRepository struct {
	client     *firestore.Client
	collection string
	timeout    time.Duration
}

// NewProjectRepository creates a new project repository
func NewProjectRepository(client *firestore.Client, collection string, timeout time.Duration) *ProjectRepository {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &ProjectRepository{
		client:     client,
		collection: collection,
		timeout:    timeout,
	}
}

// List returns every document in the collection in store order.
func (r *ProjectRepository) List(ctx context.Context) ([]domain.Project, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	iter := r.client.Collection(r.collection).Documents(ctx)
	defer iter.Stop()

	out := make([]domain.Project, 0, 16)
	for {
		doc, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: list %s: %v", domain.ErrStoreUnavailable, r.collection, err)
		}
		out = append(out, ProjectFromFields(doc.Ref.ID, doc.Data()))
	}
	return out, nil
}

// Get returns a single project by document id.
func (r *ProjectRepository) Get(ctx context.Context, id string) (*domain.Project, error) {
	id = strings.TrimSpace(id)
	if id == "" || strings.Contains(id, "/") {
		return nil, domain.ErrProjectNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	snap, err := r.client.Collection(r.collection).Doc(id).Get(ctx)
	if err := readError(r.collection+"/"+id, snap != nil && snap.Exists(), err); err != nil {
		return nil, err
	}

	p := ProjectFromFields(snap.Ref.ID, snap.Data())
	return &p, nil
}

// readError maps the outcome of a single document read onto the store
// errors: a gRPC NotFound or a missing document is ErrProjectNotFound, any
// other failure is ErrStoreUnavailable.
func readError(path string, exists bool, err error) error {
	switch {
	case status.Code(err) == codes.NotFound:
		return domain.ErrProjectNotFound
	case err != nil:
		return fmt.Errorf("%w: get %s: %v", domain.ErrStoreUnavailable, path, err)
	case !exists:
		return domain.ErrProjectNotFound
	}
	return nil
}

// Ping reads at most one document to confirm the collection is reachable.
func (r *ProjectRepository) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	iter := r.client.Collection(r.collection).Limit(1).Documents(ctx)
	defer iter.Stop()

	if _, err := iter.Next(); err != nil && !errors.Is(err, iterator.Done) {
		return fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	return nil
}

// UnavailableRepository stands in when the Firestore client could not be
// created at startup. Every call reports the original cause.
type UnavailableRepository struct {
	Cause error
}

func (r UnavailableRepository) List(context.Context) ([]domain.Project, error) {
	return nil, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, r.Cause)
}

func (r UnavailableRepository) Get(context.Context, string) (*domain.Project, error) {
	return nil, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, r.Cause)
}

func (r UnavailableRepository) Ping(context.Context) error {
	return fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, r.Cause)
}
