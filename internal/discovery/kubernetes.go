package discovery

import (
	"context"
	"fmt"
	"time"

	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/rest"

	"github.com/flarehq/flare/internal/domain"
	"github.com/flarehq/flare/internal/logger"
)

const kubernetesDefaultIcon = "kubernetes"

// AnnotatedObject is the adapter's view of one ingress-like resource:
// just a name for logging and the annotation map.
type AnnotatedObject struct {
	Name        string
	Annotations map[string]string
}

// IngressLister abstracts the cluster client so the concrete library
// is swappable and mockable in tests.
type IngressLister interface {
	ListIngressLikeObjects(ctx context.Context) ([]AnnotatedObject, error)
}

// KubernetesAdapter reads flame.pawelmalak/* annotations from ingress
// objects across all namespaces. It never mutates cluster state.
type KubernetesAdapter struct {
	lister  IngressLister
	timeout time.Duration
	logger  logger.Logger
}

func NewKubernetesAdapter(lister IngressLister, timeout time.Duration, log logger.Logger) *KubernetesAdapter {
	return &KubernetesAdapter{
		lister:  lister,
		timeout: timeout,
		logger:  log,
	}
}

func (a *KubernetesAdapter) Name() string { return "kubernetes" }

func (a *KubernetesAdapter) Discover(ctx context.Context) ([]domain.DiscoveredService, error) {
	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	objects, err := a.lister.ListIngressLikeObjects(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: kubernetes api: %v", ErrUnavailable, err)
	}

	services := make([]domain.DiscoveredService, 0, len(objects))
	for _, obj := range objects {
		if len(obj.Annotations) == 0 {
			continue
		}
		svc, err := parseService(obj.Annotations, ingressAnnotations, kubernetesDefaultIcon, a.Name())
		if err != nil {
			if obj.Annotations[ingressAnnotations.key(fieldName)] != "" {
				a.logger.Warn("skipping misconfigured ingress",
					logger.String("ingress", obj.Name),
					logger.Error(err))
			}
			continue
		}
		services = append(services, svc)
	}
	return services, nil
}

// clientgoLister is the production IngressLister backed by client-go.
type clientgoLister struct {
	clientset kubernetes.Interface
}

// NewInClusterLister loads in-cluster credentials and returns a lister
// over networking.k8s.io/v1 Ingress objects.
func NewInClusterLister() (IngressLister, error) {
	cfg, err := rest.InClusterConfig()
	if err != nil {
		return nil, fmt.Errorf("loading in-cluster config: %w", err)
	}
	clientset, err := kubernetes.NewForConfig(cfg)
	if err != nil {
		return nil, fmt.Errorf("creating kubernetes clientset: %w", err)
	}
	return &clientgoLister{clientset: clientset}, nil
}

// NewClientsetLister wraps an existing clientset. Used by tests with
// the fake clientset.
func NewClientsetLister(clientset kubernetes.Interface) IngressLister {
	return &clientgoLister{clientset: clientset}
}

func (l *clientgoLister) ListIngressLikeObjects(ctx context.Context) ([]AnnotatedObject, error) {
	list, err := l.clientset.NetworkingV1().Ingresses(metav1.NamespaceAll).List(ctx, metav1.ListOptions{})
	if err != nil {
		return nil, err
	}

	out := make([]AnnotatedObject, 0, len(list.Items))
	for _, ing := range list.Items {
		out = append(out, AnnotatedObject{
			Name:        ing.Namespace + "/" + ing.Name,
			Annotations: ing.Annotations,
		})
	}
	return out, nil
}
