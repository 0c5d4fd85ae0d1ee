// Package discovery queries external runtimes for currently-running
// services and normalizes them into domain.DiscoveredService records.
//
// Adapters are read-only against the external system and degrade
// gracefully: an unreachable endpoint yields ErrUnavailable, which the
// reconciler treats as "zero discovered services this cycle", never as
// a fatal error.
package discovery

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"

	"github.com/flarehq/flare/internal/domain"
)

// ErrUnavailable marks an adapter whose external endpoint could not be
// reached or returned a malformed response.
var ErrUnavailable = errors.New("discovery source unavailable")

// Adapter is one external discovery source.
type Adapter interface {
	// Name identifies the adapter ("docker", "kubernetes").
	Name() string

	// Discover returns the currently advertised services. The call is
	// time-bounded and cancellable through ctx; implementations wrap
	// endpoint failures in ErrUnavailable.
	Discover(ctx context.Context) ([]domain.DiscoveredService, error)
}

// Label/annotation field names shared by both adapters. Docker labels
// use the bare "flame." prefix, ingress annotations the vendored
// "flame.pawelmalak/" prefix; the semantic fields are identical.
const (
	fieldName     = "name"
	fieldURL      = "url"
	fieldIcon     = "icon"
	fieldType     = "type"
	fieldCategory = "category"
	fieldOrder    = "order"
)

type labelSchema struct {
	prefix string
}

func (s labelSchema) key(field string) string { return s.prefix + field }

var (
	dockerLabels       = labelSchema{prefix: "flame."}
	ingressAnnotations = labelSchema{prefix: "flame.pawelmalak/"}
)

// Only entries advertising an app-like type are considered.
var appTypePattern = regexp.MustCompile(`^app`)

// parseService validates one raw label/annotation map and produces a
// typed record. Invalid entries are rejected here, at the adapter
// boundary, so the reconciler never sees a half-formed service.
func parseService(labels map[string]string, schema labelSchema, defaultIcon, source string) (domain.DiscoveredService, error) {
	name := labels[schema.key(fieldName)]
	url := labels[schema.key(fieldURL)]
	typ := labels[schema.key(fieldType)]

	if !appTypePattern.MatchString(typ) {
		return domain.DiscoveredService{}, fmt.Errorf("type %q does not match ^app", typ)
	}
	if name == "" {
		return domain.DiscoveredService{}, fmt.Errorf("missing required field %q", schema.key(fieldName))
	}
	if url == "" {
		return domain.DiscoveredService{}, fmt.Errorf("missing required field %q", schema.key(fieldURL))
	}

	icon := labels[schema.key(fieldIcon)]
	if icon == "" {
		icon = defaultIcon
	}

	svc := domain.DiscoveredService{
		Name:              name,
		URL:               url,
		Icon:              icon,
		RequestedCategory: labels[schema.key(fieldCategory)],
		Source:            source,
	}

	// A malformed order hint is not worth rejecting the service over.
	if raw := labels[schema.key(fieldOrder)]; raw != "" {
		if hint, err := strconv.Atoi(raw); err == nil && hint > 0 {
			svc.OrderHint = hint
		}
	}
	return svc, nil
}
