package types

// ResourceType identifies the kind of catalog entry being tracked or merged.
type ResourceType string

const (
	// ResourceTypeRadio represents a radio record keyed by (brand, model).
	ResourceTypeRadio ResourceType = "radio"

	// ResourceTypeBrand represents a brand identity keyed by canonical name.
	ResourceTypeBrand ResourceType = "brand"
)

// String returns the string representation of a resource type.
func (rt ResourceType) String() string {
	return string(rt)
}
