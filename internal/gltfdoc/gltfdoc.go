// Package gltfdoc loads glTF documents and extracts their structural metadata
// and mesh feature ID sets
package gltfdoc

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mcncl/metaval/internal/errors"
	"github.com/mcncl/metaval/internal/schema"
	"github.com/qmuntal/gltf"
)

// Extension names
const (
	StructuralMetadataExtension = "EXT_structural_metadata"
	MeshFeaturesExtension       = "EXT_mesh_features"
)

// FeatureIDSetType says where the feature IDs of a set come from
type FeatureIDSetType string

const (
	FeatureIDSetNone      FeatureIDSetType = "none"
	FeatureIDSetAttribute FeatureIDSetType = "attribute"
	FeatureIDSetTexture   FeatureIDSetType = "texture"
	FeatureIDSetImplicit  FeatureIDSetType = "implicit"
)

// FeatureIDTexture locates feature IDs stored in texture channels
type FeatureIDTexture struct {
	Index    int64   `json:"index"`
	TexCoord int64   `json:"texCoord,omitempty"`
	Channels []int64 `json:"channels,omitempty"`
}

// FeatureIDSet is one entry of a primitive's EXT_mesh_features featureIds
type FeatureIDSet struct {
	FeatureCount  int64             `json:"featureCount"`
	Attribute     *int64            `json:"attribute,omitempty"`
	Texture       *FeatureIDTexture `json:"texture,omitempty"`
	PropertyTable *int64            `json:"propertyTable,omitempty"`
	NullFeatureID *int64            `json:"nullFeatureId,omitempty"`
	Label         string            `json:"label,omitempty"`
}

// Type reports where the set's feature IDs come from. A set with no
// attribute or texture uses implicit IDs, the vertex index.
func (s FeatureIDSet) Type() FeatureIDSetType {
	switch {
	case s.FeatureCount <= 0:
		return FeatureIDSetNone
	case s.Attribute != nil:
		return FeatureIDSetAttribute
	case s.Texture != nil:
		return FeatureIDSetTexture
	default:
		return FeatureIDSetImplicit
	}
}

type meshFeatures struct {
	FeatureIDs []FeatureIDSet `json:"featureIds"`
}

// PrimitiveFeatures holds the feature ID sets of one mesh primitive
type PrimitiveFeatures struct {
	Mesh          int
	MeshName      string
	Primitive     int
	FeatureIDSets []FeatureIDSet
}

// FeatureIDSetDescription summarizes a named feature ID set across every
// primitive of a document
type FeatureIDSetDescription struct {
	Name              string           `json:"name" yaml:"name"`
	Type              FeatureIDSetType `json:"type" yaml:"type"`
	FeatureCount      int64            `json:"featureCount" yaml:"featureCount"`
	PropertyTableName string           `json:"propertyTable,omitempty" yaml:"propertyTable,omitempty"`
	HasNullFeatureID  bool             `json:"hasNullFeatureId" yaml:"hasNullFeatureId"`
}

// Document is the metadata of a glTF document, or of a standalone schema file
type Document struct {
	Path       string
	Metadata   *schema.Extension
	Primitives []PrimitiveFeatures
}

// Load reads metadata from path. .gltf and .glb files are opened as glTF
// documents and anything else is parsed as an EXT_structural_metadata
// object or a bare schema.
func Load(path string) (*Document, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".gltf", ".glb":
		return Open(path)
	}

	ext, err := schema.ParseFile(path)
	if err != nil {
		return nil, err
	}
	return &Document{Path: path, Metadata: ext}, nil
}

// Open loads a .gltf or .glb document
func Open(path string) (*Document, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewInputError(fmt.Sprintf("document '%s' not found", path), errors.ErrFileNotFound)
		}
		return nil, errors.NewInputError("failed to access document", err)
	}

	doc, err := gltf.Open(path)
	if err != nil {
		return nil, errors.NewDocumentError(fmt.Sprintf("failed to load '%s'", path), err)
	}

	d, err := FromDocument(doc)
	if err != nil {
		return nil, err
	}
	d.Path = path
	return d, nil
}

// FromDocument extracts the root EXT_structural_metadata and every
// primitive's EXT_mesh_features from a decoded document
func FromDocument(doc *gltf.Document) (*Document, error) {
	raw, ok, err := extensionJSON(doc.Extensions, StructuralMetadataExtension)
	if err != nil {
		return nil, errors.NewDocumentError("failed to read "+StructuralMetadataExtension, err)
	}
	if !ok {
		return nil, errors.NewDocumentError("no "+StructuralMetadataExtension+" extension", errors.ErrNoStructuralMetadata)
	}

	ext, err := schema.ParseBytes(raw)
	if err != nil {
		return nil, err
	}

	d := &Document{Metadata: ext}
	for m, mesh := range doc.Meshes {
		if mesh == nil {
			continue
		}
		for p, primitive := range mesh.Primitives {
			if primitive == nil {
				continue
			}
			raw, ok, err := extensionJSON(primitive.Extensions, MeshFeaturesExtension)
			if err != nil {
				return nil, errors.NewDocumentError(fmt.Sprintf("mesh %d primitive %d", m, p), err)
			}
			if !ok {
				continue
			}

			var features meshFeatures
			if err := json.Unmarshal(raw, &features); err != nil {
				return nil, errors.NewDocumentError(
					fmt.Sprintf("failed to parse %s of mesh %d primitive %d", MeshFeaturesExtension, m, p),
					err,
				)
			}
			d.Primitives = append(d.Primitives, PrimitiveFeatures{
				Mesh:          m,
				MeshName:      mesh.Name,
				Primitive:     p,
				FeatureIDSets: features.FeatureIDs,
			})
		}
	}
	return d, nil
}

// FeatureIDSets describes the feature ID sets of every primitive. Empty
// sets are skipped and a name already seen is listed once.
func (d *Document) FeatureIDSets() []FeatureIDSetDescription {
	var tables []schema.PropertyTable
	if d.Metadata != nil {
		tables = d.Metadata.PropertyTables
	}

	var descriptions []FeatureIDSetDescription
	seen := make(map[string]bool)
	for _, primitive := range d.Primitives {
		textureCounter := 0
		for _, set := range primitive.FeatureIDSets {
			t := set.Type()
			if t == FeatureIDSetNone {
				continue
			}

			name := featureIDSetName(set, &textureCounter)
			if seen[name] {
				continue
			}
			seen[name] = true

			description := FeatureIDSetDescription{
				Name:             name,
				Type:             t,
				FeatureCount:     set.FeatureCount,
				HasNullFeatureID: set.NullFeatureID != nil && *set.NullFeatureID > -1,
			}
			if set.PropertyTable != nil {
				i := *set.PropertyTable
				if i >= 0 && i < int64(len(tables)) {
					description.PropertyTableName = schema.TableName(int(i), tables[i])
				}
			}
			descriptions = append(descriptions, description)
		}
	}
	return descriptions
}

// featureIDSetName prefers the set's label. Unlabelled texture sets are
// numbered in the order they appear on their primitive.
func featureIDSetName(set FeatureIDSet, textureCounter *int) string {
	if set.Label != "" {
		return set.Label
	}
	switch set.Type() {
	case FeatureIDSetAttribute:
		return fmt.Sprintf("_FEATURE_ID_%d", *set.Attribute)
	case FeatureIDSetTexture:
		name := fmt.Sprintf("_FEATURE_ID_TEXTURE_%d", *textureCounter)
		*textureCounter++
		return name
	case FeatureIDSetImplicit:
		return "_IMPLICIT_FEATURE_ID"
	default:
		return ""
	}
}

// extensionJSON returns the raw JSON of an extension. Extensions without a
// registered decoder are kept as raw JSON by the glTF decoder; anything else
// is marshalled back.
func extensionJSON(extensions map[string]any, name string) (json.RawMessage, bool, error) {
	value, ok := extensions[name]
	if !ok || value == nil {
		return nil, false, nil
	}
	switch v := value.(type) {
	case json.RawMessage:
		return v, true, nil
	case []byte:
		return v, true, nil
	default:
		data, err := json.Marshal(v)
		if err != nil {
			return nil, false, err
		}
		return data, true, nil
	}
}
