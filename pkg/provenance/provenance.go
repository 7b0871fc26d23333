// Package provenance records where each field value of a reconciled record
// came from and which competing values were set aside.
package provenance

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/goccy/go-yaml"

	"github.com/hamcat/rigmap/pkg/constants"
	"github.com/hamcat/rigmap/pkg/errors"
	"github.com/hamcat/rigmap/pkg/types"
)

// Reasons recorded by the merge resolver.
const (
	ReasonAdopted  = "adopted"  // blank field filled from the incoming record
	ReasonKept     = "kept"     // existing value kept over a different incoming value
	ReasonAppended = "appended" // incoming notes appended to existing notes
	ReasonRenamed  = "renamed"  // identity moved by a brand rename
)

// Provenance tracks the origin of one field value.
type Provenance struct {
	Source        types.SourceID `yaml:"source"`
	Field         string         `yaml:"field"`
	Value         any            `yaml:"value"`
	Timestamp     time.Time      `yaml:"timestamp"`
	Authority     int            `yaml:"authority,omitempty"` // source rank at the time
	Reason        string         `yaml:"reason"`
	PreviousValue any            `yaml:"previous_value,omitempty"`
}

// Map tracks provenance for multiple resources.
type Map map[string][]Provenance // key is "resourceType:resourceID:field"

// Tracker manages provenance tracking during reconciliation.
type Tracker interface {
	// Track records provenance for a field
	Track(resourceType types.ResourceType, resourceID string, field string, history Provenance)

	// FindByField retrieves provenance for a specific field
	FindByField(resourceType types.ResourceType, resourceID string, field string) []Provenance

	// FindByResource retrieves all provenance for a resource
	FindByResource(resourceType types.ResourceType, resourceID string) map[string][]Provenance

	// Map returns the complete provenance map
	Map() Map

	// Clear removes all provenance data
	Clear()
}

type tracker struct {
	mu         sync.RWMutex
	provenance Map
	enabled    bool
}

// NewTracker creates a new provenance tracker. A disabled tracker records nothing.
func NewTracker(enabled bool) Tracker {
	return &tracker{provenance: make(Map), enabled: enabled}
}

// Track records provenance for a field.
func (p *tracker) Track(resourceType types.ResourceType, resourceID string, field string, history Provenance) {
	if !p.enabled {
		return
	}
	if history.Timestamp.IsZero() {
		history.Timestamp = time.Now()
	}
	if history.Field == "" {
		history.Field = field
	}

	key := makeKey(resourceType, resourceID, field)
	p.mu.Lock()
	p.provenance[key] = append(p.provenance[key], history)
	p.mu.Unlock()
}

// FindByField retrieves provenance for a specific field.
func (p *tracker) FindByField(resourceType types.ResourceType, resourceID string, field string) []Provenance {
	if !p.enabled {
		return nil
	}
	p.mu.RLock()
	defer p.mu.RUnlock()
	return append([]Provenance(nil), p.provenance[makeKey(resourceType, resourceID, field)]...)
}

// FindByResource retrieves all provenance for a resource keyed by field.
func (p *tracker) FindByResource(resourceType types.ResourceType, resourceID string) map[string][]Provenance {
	if !p.enabled {
		return nil
	}
	p.mu.RLock()
	defer p.mu.RUnlock()

	result := make(map[string][]Provenance)
	for key, info := range p.provenance {
		rt, id, field, ok := splitKey(key)
		if ok && rt == resourceType && id == resourceID {
			result[field] = append([]Provenance(nil), info...)
		}
	}
	return result
}

// Map returns a copy of the complete provenance map.
func (p *tracker) Map() Map {
	if !p.enabled {
		return nil
	}
	p.mu.RLock()
	defer p.mu.RUnlock()

	result := make(Map, len(p.provenance))
	for k, v := range p.provenance {
		result[k] = append([]Provenance{}, v...)
	}
	return result
}

// Clear removes all provenance data.
func (p *tracker) Clear() {
	p.mu.Lock()
	p.provenance = make(Map)
	p.mu.Unlock()
}

func makeKey(resourceType types.ResourceType, resourceID, field string) string {
	return fmt.Sprintf("%s:%s:%s", resourceType, resourceID, field)
}

// splitKey splits on the first and last colon so resource IDs may contain colons.
func splitKey(key string) (types.ResourceType, string, string, bool) {
	first := strings.Index(key, ":")
	last := strings.LastIndex(key, ":")
	if first < 0 || last <= first {
		return "", "", "", false
	}
	return types.ResourceType(key[:first]), key[first+1 : last], key[last+1:], true
}

// Report groups provenance per resource for display.
type Report struct {
	Resources map[string]ResourceProvenance // key is "resourceType:resourceID"
}

// ResourceProvenance contains provenance for a single resource.
type ResourceProvenance struct {
	Type   types.ResourceType
	ID     string
	Fields map[string]Field
}

// Field contains provenance history for a single field.
type Field struct {
	Current   Provenance     // value the record ended up with
	History   []Provenance   // every event, oldest first
	Conflicts []ConflictInfo // incoming values that lost to an existing one
}

// ConflictInfo describes a value that was set aside.
type ConflictInfo struct {
	Sources        []types.SourceID
	Values         []any
	Resolution     string
	SelectedSource types.SourceID
}

// GenerateReport creates a provenance report from a Map.
func GenerateReport(provenance Map) *Report {
	report := &Report{Resources: make(map[string]ResourceProvenance)}

	for key, infos := range provenance {
		resourceType, resourceID, field, ok := splitKey(key)
		if !ok {
			continue
		}
		resourceKey := fmt.Sprintf("%s:%s", resourceType, resourceID)

		resource, exists := report.Resources[resourceKey]
		if !exists {
			resource = ResourceProvenance{
				Type:   resourceType,
				ID:     resourceID,
				Fields: make(map[string]Field),
			}
		}

		history := append([]Provenance(nil), infos...)
		sort.SliceStable(history, func(i, j int) bool {
			return history[i].Timestamp.Before(history[j].Timestamp)
		})

		fieldProv := Field{History: history, Conflicts: detectConflicts(history)}
		for i := len(history) - 1; i >= 0; i-- {
			if history[i].Reason != ReasonKept {
				fieldProv.Current = history[i]
				break
			}
		}

		resource.Fields[field] = fieldProv
		report.Resources[resourceKey] = resource
	}
	return report
}

// detectConflicts turns every "kept" event into a conflict entry.
func detectConflicts(history []Provenance) []ConflictInfo {
	var conflicts []ConflictInfo
	for _, info := range history {
		if info.Reason != ReasonKept {
			continue
		}
		conflicts = append(conflicts, ConflictInfo{
			Sources:        []types.SourceID{info.Source},
			Values:         []any{info.PreviousValue, info.Value},
			Resolution:     "first value kept",
			SelectedSource: info.Source,
		})
	}
	return conflicts
}

// String generates a string representation of the provenance report.
func (r *Report) String() string {
	var sb strings.Builder

	sb.WriteString("Provenance Report\n")
	sb.WriteString("=================\n\n")

	resourceKeys := make([]string, 0, len(r.Resources))
	for key := range r.Resources {
		resourceKeys = append(resourceKeys, key)
	}
	sort.Strings(resourceKeys)

	for _, key := range resourceKeys {
		resource := r.Resources[key]
		fmt.Fprintf(&sb, "%s: %s\n", resource.Type, resource.ID)
		sb.WriteString(strings.Repeat("-", 40))
		sb.WriteString("\n")

		fieldKeys := make([]string, 0, len(resource.Fields))
		for field := range resource.Fields {
			fieldKeys = append(fieldKeys, field)
		}
		sort.Strings(fieldKeys)

		for _, field := range fieldKeys {
			fieldProv := resource.Fields[field]
			fmt.Fprintf(&sb, "  %s: %v (%s from %s)\n", field,
				fieldProv.Current.Value, fieldProv.Current.Reason, fieldProv.Current.Source)
			for _, c := range fieldProv.Conflicts {
				fmt.Fprintf(&sb, "    kept %v over %v\n", c.Values[0], c.Values[1])
			}
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// File is the on-disk form of a provenance map.
type File struct {
	Provenance Map `yaml:"provenance"`
}

// Save writes a provenance map as YAML.
func Save(path string, m Map) error {
	data, err := yaml.Marshal(File{Provenance: m})
	if err != nil {
		return fmt.Errorf("marshaling provenance: %w", err)
	}
	return errors.WrapIO("write", path, os.WriteFile(path, data, constants.FilePermissions))
}

// Load reads provenance data from a YAML file.
// Returns nil, nil if the file doesn't exist.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.WrapIO("read", path, err)
	}

	var pf File
	if err := yaml.Unmarshal(data, &pf); err != nil {
		return nil, errors.WrapParse("yaml", path, err)
	}
	return &pf, nil
}

// Append adds m to the provenance saved at path, creating the file when it
// does not exist. Histories of the same field are concatenated.
func Append(path string, m Map) error {
	pf, err := Load(path)
	if err != nil {
		return err
	}
	merged := make(Map, len(m))
	if pf != nil {
		for key, infos := range pf.Provenance {
			merged[key] = append(merged[key], infos...)
		}
	}
	for key, infos := range m {
		merged[key] = append(merged[key], infos...)
	}
	return Save(path, merged)
}
