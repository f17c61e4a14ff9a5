package contentpack

import (
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const samplePack = `{
  "hat": {
    "displayName": "Top Hat",
    "resourceName": "hat.glb",
    "attachPoint": "head",
    "grabbable": true,
    "scale": {"x": 0.5, "y": 0.5, "z": 0.5}
  },
  "lamp": {
    "displayName": "Lamp",
    "resourceId": "artifact:1150",
    "rigidBody": "true",
    "grabbable": 1,
    "position": {"x": 2, "y": "0.5", "z": -1},
    "rotation": {"x": 90, "y": 0, "z": 0}
  },
  "note": {"displayName": "Just a label"}
}`

func TestDatabaseDecode(t *testing.T) {
	var db Database
	require.NoError(t, json.Unmarshal([]byte(samplePack), &db))
	require.Len(t, db, 3)

	hat := db["hat"]
	assert.Equal(t, "hat.glb", hat.ResourceName)
	assert.True(t, bool(hat.Grabbable))
	assert.False(t, bool(hat.RigidBody))
	assert.Nil(t, hat.Position)
	require.NotNil(t, hat.Scale)
	assert.Equal(t, Vector3{0.5, 0.5, 0.5}, *hat.Scale)

	lamp := db["lamp"]
	assert.True(t, bool(lamp.RigidBody))
	assert.True(t, bool(lamp.Grabbable))
	assert.Equal(t, Vector3{2, 0.5, -1}, *lamp.Position)
	assert.Equal(t, Vector3{90, 0, 0}, *lamp.Rotation)

	assert.Equal(t, []string{"hat", "lamp", "note"}, db.Keys())
}

func TestDescriptorDecode_PartialScale(t *testing.T) {
	var db Database
	require.NoError(t, json.Unmarshal([]byte(`{
		"wide": {"resourceId": "artifact:1", "scale": {"x": 2}, "position": {"x": 2}},
		"flat": {"resourceId": "artifact:2", "scale": {"y": "0"}},
		"none": {"resourceId": "artifact:3", "scale": null}
	}`), &db))

	require.NotNil(t, db["wide"].Scale)
	assert.Equal(t, Vector3{2, 1, 1}, *db["wide"].Scale)
	assert.Equal(t, Vector3{2, 0, 0}, *db["wide"].Position)
	assert.Equal(t, "artifact:1", db["wide"].ResourceID)

	// An explicit zero still counts as a zero component.
	require.NotNil(t, db["flat"].Scale)
	assert.Equal(t, Vector3{1, 0, 1}, *db["flat"].Scale)
	assert.Equal(t, []string{"scale has a zero component"}, db["flat"].Validate())

	assert.Nil(t, db["none"].Scale)
}

func TestDescriptorValidate(t *testing.T) {
	tests := []struct {
		name string
		desc Descriptor
		want []string
	}{
		{"Library", Descriptor{ResourceID: "artifact:1"}, nil},
		{"Model", Descriptor{ResourceName: "a.glb", AttachPoint: "left-hand"}, nil},
		{"NoResource", Descriptor{}, []string{"no resourceName or resourceId"}},
		{"BadAttachPoint", Descriptor{ResourceID: "x", AttachPoint: "tail"}, []string{`unknown attachPoint "tail"`}},
		{"ZeroScale", Descriptor{ResourceID: "x", Scale: &Vector3{X: 1, Y: 0, Z: 1}}, []string{"scale has a zero component"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.desc.Validate())
		})
	}
}

func TestIDFromParams(t *testing.T) {
	assert.Equal(t, "", IDFromParams(nil))
	assert.Equal(t, "", IDFromParams(map[string]string{"cpack": "  "}))
	assert.Equal(t, "42", IDFromParams(map[string]string{"content_pack": "42"}))
	assert.Equal(t, "7", IDFromParams(map[string]string{"cpack": "7", "content_pack": "42"}))
}
