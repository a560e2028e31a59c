package assets

import (
	"net/url"
	"regexp"
	"strings"
)

var absolutePattern = regexp.MustCompile(`^([A-Za-z][A-Za-z0-9+.-]*:|//)`)

// Resolver maps object names in the public image bucket to fetchable URLs.
// It holds no state beyond its root and never performs I/O.
type Resolver struct {
	root string
}

// NewResolver builds a resolver for baseURL/bucket, for example
// https://storage.googleapis.com and portfolio-website-images.
func NewResolver(baseURL, bucket string) *Resolver {
	root := strings.TrimRight(baseURL, "/")
	if b := strings.Trim(bucket, "/"); b != "" {
		root += "/" + b
	}
	return &Resolver{root: root}
}

// Root is the public URL prefix every bare filename is resolved against.
func (r *Resolver) Root() string {
	return r.root
}

// Resolve returns ref unchanged when it is already absolute, otherwise the
// bucket URL for it. Path segments are escaped once: a segment that is
// already percent-encoded is decoded first. An empty ref stays empty.
func (r *Resolver) Resolve(ref string) string {
	ref = strings.TrimSpace(ref)
	if ref == "" || IsAbsolute(ref) {
		return ref
	}

	segments := strings.Split(strings.TrimLeft(ref, "/"), "/")
	for i, s := range segments {
		if decoded, err := url.PathUnescape(s); err == nil {
			s = decoded
		}
		segments[i] = url.PathEscape(s)
	}
	return r.root + "/" + strings.Join(segments, "/")
}

// IsAbsolute reports whether ref carries a scheme or is protocol-relative.
func IsAbsolute(ref string) bool {
	return absolutePattern.MatchString(ref)
}
