package domain

// DiscoveredService is the normalized output of one discovery adapter
// item. Instances are ephemeral: produced fresh on every discovery
// cycle, consumed by the reconciler, never persisted.
type DiscoveredService struct {
	// Name identifies the service and is matched case-sensitively
	// against App.Name during reconciliation.
	Name string

	// URL is the advertised target.
	URL string

	// Icon is the advertised icon, or the adapter default when the
	// label/annotation was absent.
	Icon string

	// RequestedCategory is the optional category name advertised by
	// the service. Empty means "no preference".
	RequestedCategory string

	// OrderHint is the optional advertised manual position. Zero
	// means "no hint"; it only matters for newly created Apps.
	OrderHint int

	// Source names the adapter that produced this record ("docker",
	// "kubernetes"). Used for logging only.
	Source string
}
