// Package blueprint implements the Satisfactory Calculator blueprint
// container (.cbp): a zlib-compressed JSON document listing placed
// buildings.
package blueprint

const (
	SaveVersion  = 46
	BuildVersion = 365306

	// UnitSize is the world distance between two neighbouring pixels.
	UnitSize = 100
)

// Document is the top-level blueprint.
type Document struct {
	SaveVersion  int      `json:"saveVersion"`
	BuildVersion int      `json:"buildVersion"`
	Objects      []Object `json:"objects"`

	MinX float64 `json:"minX"`
	MaxX float64 `json:"maxX"`
	MinY float64 `json:"minY"`
	MaxY float64 `json:"maxY"`

	// Never populated by the converter, kept for the target schema.
	Pipes             map[string]any `json:"pipes"`
	PowerCircuits     map[string]any `json:"powerCircuits"`
	HiddenConnections map[string]any `json:"hiddenConnections"`

	Extra Extra `json:"-"`
}

// NewDocument returns an empty document with the fixed version fields and
// empty auxiliary maps.
func NewDocument() *Document {
	return &Document{
		SaveVersion:       SaveVersion,
		BuildVersion:      BuildVersion,
		Objects:           []Object{},
		Pipes:             map[string]any{},
		PowerCircuits:     map[string]any{},
		HiddenConnections: map[string]any{},
	}
}

func (d Document) MarshalJSON() ([]byte, error) {
	return encodeMembers([]member{
		{"saveVersion", d.SaveVersion},
		{"buildVersion", d.BuildVersion},
		{"objects", d.Objects},
		{"minX", d.MinX},
		{"maxX", d.MaxX},
		{"minY", d.MinY},
		{"maxY", d.MaxY},
		{"pipes", d.Pipes},
		{"powerCircuits", d.PowerCircuits},
		{"hiddenConnections", d.HiddenConnections},
	}, d.Extra)
}

func (d *Document) UnmarshalJSON(data []byte) error {
	*d = Document{}
	extra, err := decodeMembers(data, map[string]any{
		"saveVersion":       &d.SaveVersion,
		"buildVersion":      &d.BuildVersion,
		"objects":           &d.Objects,
		"minX":              &d.MinX,
		"maxX":              &d.MaxX,
		"minY":              &d.MinY,
		"maxY":              &d.MaxY,
		"pipes":             &d.Pipes,
		"powerCircuits":     &d.PowerCircuits,
		"hiddenConnections": &d.HiddenConnections,
	})
	d.Extra = extra
	return err
}

// Object is one placed building.
type Object struct {
	Type          int        `json:"type"`
	ClassName     string     `json:"className"`
	LevelName     string     `json:"levelName"`
	PathName      string     `json:"pathName"`
	NeedTransform int        `json:"needTransform"`
	Transform     Transform  `json:"transform"`
	Properties    []Property `json:"properties"`
	Entity        Reference  `json:"entity"`

	Extra Extra `json:"-"`
}

func (o Object) MarshalJSON() ([]byte, error) {
	return encodeMembers([]member{
		{"type", o.Type},
		{"className", o.ClassName},
		{"levelName", o.LevelName},
		{"pathName", o.PathName},
		{"needTransform", o.NeedTransform},
		{"transform", o.Transform},
		{"properties", o.Properties},
		{"entity", o.Entity},
	}, o.Extra)
}

func (o *Object) UnmarshalJSON(data []byte) error {
	*o = Object{}
	extra, err := decodeMembers(data, map[string]any{
		"type":          &o.Type,
		"className":     &o.ClassName,
		"levelName":     &o.LevelName,
		"pathName":      &o.PathName,
		"needTransform": &o.NeedTransform,
		"transform":     &o.Transform,
		"properties":    &o.Properties,
		"entity":        &o.Entity,
	})
	o.Extra = extra
	return err
}

type Transform struct {
	Rotation    [4]float64 `json:"rotation"`
	Translation [3]float64 `json:"translation"`
}

// Reference points at another object or asset by path.
type Reference struct {
	LevelName string `json:"levelName"`
	PathName  string `json:"pathName"`
}

// LinearColor holds normalized channels in [0,1].
type LinearColor struct {
	R float64 `json:"r"`
	G float64 `json:"g"`
	B float64 `json:"b"`
	A float64 `json:"a"`
}

// Property returns the first top-level property with the given name.
func (o *Object) Property(name string) (*Property, bool) {
	for i := range o.Properties {
		if o.Properties[i].Name == name {
			return &o.Properties[i], true
		}
	}
	return nil, false
}

// PrimaryColor digs the override primary color out of the customization
// data. ok is false for objects without a color override.
func (o *Object) PrimaryColor() (c LinearColor, ok bool) {
	custom, ok := o.Property(propCustomization)
	if !ok || custom.Struct == nil {
		return c, false
	}
	override, ok := custom.Struct.Find(propOverrideColor)
	if !ok || override.Struct == nil {
		return c, false
	}
	primary, ok := override.Struct.Find(propPrimaryColor)
	if !ok || primary.Struct == nil || primary.Struct.Color == nil {
		return c, false
	}
	return *primary.Struct.Color, true
}
