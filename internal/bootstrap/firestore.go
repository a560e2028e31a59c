package bootstrap

import (
	"context"
	"fmt"
	"strings"
	"time"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	"google.golang.org/api/option"

	"github.com/portfolio-website/portfolio-server/config"
)

// OpenFirestore creates the process-wide Firestore client. Credentials may
// be a file path or an inline service account document; when empty the
// application default credentials are used.
func OpenFirestore(ctx context.Context, cfg config.FirestoreConfig) (*firestore.Client, error) {
	var opts []option.ClientOption
	switch creds := strings.TrimSpace(cfg.Credentials); {
	case creds == "":
	case strings.HasPrefix(creds, "{"):
		opts = append(opts, option.WithCredentialsJSON([]byte(creds)))
	default:
		opts = append(opts, option.WithCredentialsFile(creds))
	}

	cctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	app, err := firebase.NewApp(cctx, &firebase.Config{ProjectID: cfg.ProjectID}, opts...)
	if err != nil {
		return nil, fmt.Errorf("firebase app: %w", err)
	}

	client, err := app.Firestore(cctx)
	if err != nil {
		return nil, fmt.Errorf("firestore client: %w", err)
	}
	return client, nil
}
