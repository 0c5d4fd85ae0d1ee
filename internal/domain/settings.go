package domain

// Settings holds the runtime-editable flags persisted in the store.
// Components receive a Settings value fetched once per operation;
// nothing reads it as ambient global state.
type Settings struct {
	// UseOrdering selects the active OrderingPolicy.
	UseOrdering OrderingPolicy `json:"useOrdering"`

	// UseDockerDiscovery enables the container-runtime adapter.
	UseDockerDiscovery bool `json:"dockerApps"`

	// UseKubernetesDiscovery enables the ingress adapter.
	UseKubernetesDiscovery bool `json:"kubernetesApps"`

	// UnpinStoppedApps unpins every App absent from a successful
	// discovery result.
	UnpinStoppedApps bool `json:"unpinStoppedApps"`

	// PinAppsByDefault pins user-created Apps at creation time.
	PinAppsByDefault bool `json:"pinAppsByDefault"`

	// PinCategoriesByDefault pins user-created Categories at creation time.
	PinCategoriesByDefault bool `json:"pinCategoriesByDefault"`
}

// DefaultSettings are the values seeded on first start.
func DefaultSettings() Settings {
	return Settings{
		UseOrdering:            OrderByCreated,
		UseDockerDiscovery:     false,
		UseKubernetesDiscovery: false,
		UnpinStoppedApps:       false,
		PinAppsByDefault:       true,
		PinCategoriesByDefault: true,
	}
}
