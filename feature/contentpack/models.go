package contentpack

import (
	"fmt"
	"sort"

	"artifact-host/core/utils"

	"github.com/goccy/go-json"
)

// Vector3 is a JSON {x,y,z} vector. Components may be numbers or numeric strings.
type Vector3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// UnmarshalJSON accepts loosely typed components. Missing components are zero.
func (v *Vector3) UnmarshalJSON(data []byte) error {
	return v.decode(data, 0)
}

func (v *Vector3) decode(data []byte, missing float64) error {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("vector: %w", err)
	}
	component := func(name string) float64 {
		if c, ok := raw[name]; ok && c != nil {
			return utils.ToFloat(c)
		}
		return missing
	}
	v.X = component("x")
	v.Y = component("y")
	v.Z = component("z")
	return nil
}

// scale decodes like Vector3 but leaves missing components at 1.
type scale Vector3

func (s *scale) UnmarshalJSON(data []byte) error {
	return (*Vector3)(s).decode(data, 1)
}

// Flag is a boolean that also decodes from 0/1 and "true"/"false".
type Flag bool

// UnmarshalJSON accepts loosely typed booleans.
func (f *Flag) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("flag: %w", err)
	}
	*f = Flag(utils.ToBool(raw))
	return nil
}

// Descriptor describes one placeable artifact of a content pack.
type Descriptor struct {
	DisplayName string `json:"displayName"`
	// ResourceName is a model file loaded and cached as a prefab.
	ResourceName string `json:"resourceName,omitempty"`
	// ResourceID is a hosted library (catalog) resource, e.g. "artifact:1150".
	ResourceID  string   `json:"resourceId,omitempty"`
	AttachPoint string   `json:"attachPoint,omitempty"`
	Grabbable   Flag     `json:"grabbable,omitempty"`
	RigidBody   Flag     `json:"rigidBody,omitempty"`
	Scale       *Vector3 `json:"scale,omitempty"`
	Rotation    *Vector3 `json:"rotation,omitempty"`
	Position    *Vector3 `json:"position,omitempty"`
}

// UnmarshalJSON decodes a descriptor. A partial scale such as {"x":2}
// keeps the omitted axes at 1.
func (d *Descriptor) UnmarshalJSON(data []byte) error {
	type plain Descriptor
	aux := struct {
		*plain
		Scale *scale `json:"scale,omitempty"`
	}{plain: (*plain)(d)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	d.Scale = (*Vector3)(aux.Scale)
	return nil
}

// Database maps artifact keys to descriptors. It is not mutated after loading.
type Database map[string]Descriptor

// Keys returns the artifact keys in sorted order.
func (db Database) Keys() []string {
	keys := make([]string, 0, len(db))
	for k := range db {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// AttachPoints lists the avatar anchors an artifact can be worn on.
var AttachPoints = map[string]struct{}{
	"camera": {}, "head": {}, "neck": {}, "hips": {},
	"center-eye": {}, "left-eye": {}, "right-eye": {},
	"spine-top": {}, "spine-middle": {}, "spine-bottom": {},
	"left-upper-arm": {}, "left-lower-arm": {}, "left-hand": {},
	"right-upper-arm": {}, "right-lower-arm": {}, "right-hand": {},
	"left-upper-leg": {}, "left-lower-leg": {}, "left-foot": {},
	"right-upper-leg": {}, "right-lower-leg": {}, "right-foot": {},
}

// Validate reports descriptor problems that keep an artifact from appearing as authored.
// An empty result means the descriptor is usable. Problems are advisory; loading never fails on them.
func (d Descriptor) Validate() []string {
	var issues []string
	if d.ResourceName == "" && d.ResourceID == "" {
		issues = append(issues, "no resourceName or resourceId")
	}
	if d.AttachPoint != "" {
		if _, ok := AttachPoints[d.AttachPoint]; !ok {
			issues = append(issues, fmt.Sprintf("unknown attachPoint %q", d.AttachPoint))
		}
	}
	if s := d.Scale; s != nil && (s.X == 0 || s.Y == 0 || s.Z == 0) {
		issues = append(issues, "scale has a zero component")
	}
	return issues
}
