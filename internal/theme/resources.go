package theme

// ResourceID names a resource dictionary known to the UI host.
type ResourceID string

const (
	// ResourceFluentBase is the chrome dictionary shared by Light and Dark.
	ResourceFluentBase ResourceID = "fluent-base"
	// ResourceHighContrastBase is the chrome dictionary for every high-contrast theme.
	ResourceHighContrastBase ResourceID = "fluent-hc-base"
	// ResourceSharedStyles is the application style sheet. It is always
	// appended last so its keys override the base dictionaries.
	ResourceSharedStyles ResourceID = "shared-styles"
)

var (
	fluentStack       = []ResourceID{ResourceFluentBase, ResourceSharedStyles}
	highContrastStack = []ResourceID{ResourceHighContrastBase, ResourceSharedStyles}
)

// resourceTable is indexed by Theme. System has no entry.
var resourceTable = [themeCount][]ResourceID{
	Light:             fluentStack,
	Dark:              fluentStack,
	HighContrast1:     highContrastStack,
	HighContrast2:     highContrastStack,
	HighContrastWhite: highContrastStack,
	HighContrastBlack: highContrastStack,
}

// Resources returns the ordered dictionaries to load for t.
// The returned slice is a copy. It is nil for System and invalid values.
func Resources(t Theme) []ResourceID {
	if !t.IsConcrete() {
		return nil
	}
	ids := resourceTable[t]
	out := make([]ResourceID, len(ids))
	copy(out, ids)
	return out
}

// AllResources returns every identifier referenced by the table, without duplicates.
func AllResources() []ResourceID {
	seen := make(map[ResourceID]struct{})
	var out []ResourceID
	for _, t := range Concrete() {
		for _, id := range resourceTable[t] {
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			out = append(out, id)
		}
	}
	return out
}
