package artifacts_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"math"
	"testing"

	"artifact-host/core/mre"
	"artifact-host/core/mre/memory"
	"artifact-host/feature/artifacts"
	"artifact-host/feature/contentpack"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type staticModels map[string][]byte

func (s staticModels) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	data, ok := s[name]
	if !ok {
		return nil, errors.New("no such model")
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

var models = staticModels{
	"hat.glb":   []byte("glTF\x02\x00\x00\x00"),
	"scarf.glb": []byte("glTF\x02\x00\x00\x00"),
	"bad.glb":   []byte("not a model"),
}

type mockFactory struct {
	mock.Mock
}

func (m *mockFactory) CreateFromPrefab(ctx context.Context, prefabID string, spec mre.ActorSpec) (mre.Actor, error) {
	args := m.Called(ctx, prefabID, spec)
	a, _ := args.Get(0).(mre.Actor)
	return a, args.Error(1)
}

func (m *mockFactory) CreateFromLibrary(ctx context.Context, resourceID string, spec mre.ActorSpec) (mre.Actor, error) {
	args := m.Called(ctx, resourceID, spec)
	a, _ := args.Get(0).(mre.Actor)
	return a, args.Error(1)
}

func (m *mockFactory) CreatePrimitive(ctx context.Context, spec mre.ActorSpec) (mre.Actor, error) {
	args := m.Called(ctx, spec)
	a, _ := args.Get(0).(mre.Actor)
	return a, args.Error(1)
}

func TestResolveTransform_Defaults(t *testing.T) {
	tr := artifacts.ResolveTransform(contentpack.Descriptor{ResourceID: "artifact:1"})
	assert.Equal(t, mgl64.Vec3{0, 1, 0}, tr.Position)
	assert.Equal(t, mgl64.Vec3{1, 1, 1}, tr.Scale)
	assert.Equal(t, mgl64.QuatIdent(), tr.Rotation)

	worn := artifacts.ResolveWornTransform(contentpack.Descriptor{})
	assert.Equal(t, mgl64.Vec3{}, worn.Position)
}

func TestResolveTransform_Explicit(t *testing.T) {
	tr := artifacts.ResolveTransform(contentpack.Descriptor{
		Position: &contentpack.Vector3{X: 1, Y: 2, Z: 3},
		Scale:    &contentpack.Vector3{X: 2, Y: 2, Z: 2},
	})
	assert.Equal(t, mgl64.Vec3{1, 2, 3}, tr.Position)
	assert.Equal(t, mgl64.Vec3{2, 2, 2}, tr.Scale)
}

func TestEulerToQuat(t *testing.T) {
	tests := []struct {
		name  string
		deg   contentpack.Vector3
		angle float64
		axis  mgl64.Vec3
	}{
		{"X90", contentpack.Vector3{X: 90}, math.Pi / 2, mgl64.Vec3{1, 0, 0}},
		{"Y180", contentpack.Vector3{Y: 180}, math.Pi, mgl64.Vec3{0, 1, 0}},
		{"Z45", contentpack.Vector3{Z: 45}, math.Pi / 4, mgl64.Vec3{0, 0, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := artifacts.EulerToQuat(tt.deg)
			want := mgl64.QuatRotate(tt.angle, tt.axis)
			assert.InDelta(t, want.W, got.W, 1e-6)
			for i := 0; i < 3; i++ {
				assert.InDelta(t, want.V[i], got.V[i], 1e-6)
			}
		})
	}

	t.Run("ComposesXThenYThenZ", func(t *testing.T) {
		got := artifacts.EulerToQuat(contentpack.Vector3{X: 30, Y: 60, Z: 90})
		qx := mgl64.QuatRotate(mgl64.DegToRad(30), mgl64.Vec3{1, 0, 0})
		qy := mgl64.QuatRotate(mgl64.DegToRad(60), mgl64.Vec3{0, 1, 0})
		qz := mgl64.QuatRotate(mgl64.DegToRad(90), mgl64.Vec3{0, 0, 1})
		want := qx.Mul(qy).Mul(qz)
		assert.True(t, got.ApproxEqualThreshold(want, 1e-6), "got %v want %v", got, want)
	})
}

func TestPreloader_PartialFailure(t *testing.T) {
	rt := memory.New(models, zap.NewNop())
	db := contentpack.Database{
		"hat":   {ResourceName: "hat.glb"},
		"scarf": {ResourceName: "scarf.glb"},
		"bad":   {ResourceName: "bad.glb"},
	}
	cache := artifacts.NewPrefabCache()

	report := artifacts.NewPreloader(rt, zap.NewNop(), 2).Preload(context.Background(), db, cache)

	assert.Equal(t, 2, cache.Len())
	assert.Equal(t, []string{"hat", "scarf"}, cache.Keys())
	assert.Equal(t, []string{"hat", "scarf"}, report.Loaded)
	assert.Contains(t, report.Failed, "bad")

	prefab, ok := cache.Get("hat")
	require.True(t, ok)
	assert.Equal(t, mre.AssetPrefab, prefab.Kind)
}

func TestPreloader_SkipsEntriesWithoutModel(t *testing.T) {
	rt := memory.New(models, zap.NewNop())
	db := contentpack.Database{
		"lamp":  {ResourceID: "artifact:1"},
		"label": {},
		"ghost": {ResourceName: "missing.glb"},
	}
	cache := artifacts.NewPrefabCache()

	report := artifacts.NewPreloader(rt, zap.NewNop(), 0).Preload(context.Background(), db, cache)
	assert.Equal(t, 0, cache.Len())
	assert.ElementsMatch(t, []string{"lamp", "label"}, report.Skipped)
	assert.Len(t, report.Failed, 1)

	cache.Clear()
	assert.Equal(t, 0, cache.Len())
}

func TestSpawner_SpawnAll(t *testing.T) {
	rt := memory.New(models, zap.NewNop())
	db := contentpack.Database{
		"lamp": {DisplayName: "Lamp", ResourceID: "artifact:1", Grabbable: true, RigidBody: true},
		"rock": {ResourceID: "artifact:2", Rotation: &contentpack.Vector3{X: 90}},
		"hat":  {ResourceName: "hat.glb"},
		"note": {},
	}

	spawned := artifacts.NewSpawner(rt, artifacts.NewPrefabCache(), zap.NewNop()).SpawnAll(context.Background(), db)
	require.Len(t, spawned, 2)
	assert.Equal(t, "lamp", spawned[0].Key)
	assert.Equal(t, "rock", spawned[1].Key)

	byName := map[string]mre.ActorState{}
	for _, st := range rt.Actors() {
		byName[st.Name] = st
	}
	require.Len(t, byName, 2)

	lamp := byName["Lamp"]
	assert.Equal(t, "artifact:1", lamp.Resource)
	assert.Equal(t, [3]float64{0, 1, 0}, lamp.Position)
	assert.Equal(t, [3]float64{1, 1, 1}, lamp.Scale)
	assert.Equal(t, [4]float64{0, 0, 0, 1}, lamp.Rotation)
	assert.True(t, lamp.Grabbable)
	require.NotNil(t, lamp.RigidBody)
	assert.Equal(t, mre.RigidBody{Mass: 0, UseGravity: false, DetectCollisions: true}, *lamp.RigidBody)

	rock := byName["rock"]
	assert.False(t, rock.Grabbable)
	assert.Nil(t, rock.RigidBody)
	assert.InDelta(t, math.Sqrt2/2, rock.Rotation[0], 1e-6)
	assert.InDelta(t, math.Sqrt2/2, rock.Rotation[3], 1e-6)
}

func TestSpawner_SpawnAllEmpty(t *testing.T) {
	factory := new(mockFactory)
	spawned := artifacts.NewSpawner(factory, artifacts.NewPrefabCache(), zap.NewNop()).
		SpawnAll(context.Background(), contentpack.Database{})
	assert.Empty(t, spawned)
	factory.AssertNotCalled(t, "CreateFromLibrary", mock.Anything, mock.Anything, mock.Anything)
	factory.AssertNotCalled(t, "CreateFromPrefab", mock.Anything, mock.Anything, mock.Anything)
}

func TestSpawner_FailureIsContained(t *testing.T) {
	rt := memory.New(nil, zap.NewNop())
	factory := new(mockFactory)
	good, err := rt.CreatePrimitive(context.Background(), mre.ActorSpec{Name: "ok"})
	require.NoError(t, err)

	factory.On("CreateFromLibrary", mock.Anything, "artifact:bad", mock.Anything).Return(nil, errors.New("catalog offline"))
	factory.On("CreateFromLibrary", mock.Anything, "artifact:ok", mock.Anything).Return(good, nil)

	db := contentpack.Database{
		"a": {ResourceID: "artifact:bad"},
		"b": {ResourceID: "artifact:ok"},
	}
	spawned := artifacts.NewSpawner(factory, artifacts.NewPrefabCache(), zap.NewNop()).SpawnAll(context.Background(), db)
	require.Len(t, spawned, 1)
	assert.Equal(t, "b", spawned[0].Key)
}

func TestSpawner_SpawnAttached(t *testing.T) {
	rt := memory.New(models, zap.NewNop())
	rt.Join(mre.User{ID: "u1"})
	ctx := context.Background()

	cache := artifacts.NewPrefabCache()
	db := contentpack.Database{
		"hat":  {ResourceName: "hat.glb", AttachPoint: "head"},
		"lamp": {ResourceID: "artifact:1"},
		"note": {},
	}
	artifacts.NewPreloader(rt, zap.NewNop(), 0).Preload(ctx, db, cache)
	spawner := artifacts.NewSpawner(rt, cache, zap.NewNop())

	hat, err := spawner.SpawnAttached(ctx, "hat", db["hat"], mre.Attachment{UserID: "u1", AttachPoint: "head"})
	require.NoError(t, err)
	att, ok := hat.Attachment()
	require.True(t, ok)
	assert.Equal(t, "head", att.AttachPoint)

	lamp, err := spawner.SpawnAttached(ctx, "lamp", db["lamp"], mre.Attachment{UserID: "u1", AttachPoint: "left-hand"})
	require.NoError(t, err)
	assert.Equal(t, "lamp", lamp.Name())

	states := rt.Actors()
	require.Len(t, states, 2)
	assert.Equal(t, "hat.glb#prefab", states[0].Resource)
	assert.Equal(t, [3]float64{0, 0, 0}, states[0].Position)
	assert.Equal(t, "artifact:1", states[1].Resource)

	_, err = spawner.SpawnAttached(ctx, "note", db["note"], mre.Attachment{UserID: "u1", AttachPoint: "head"})
	assert.ErrorIs(t, err, artifacts.ErrNoResource)

	_, err = spawner.SpawnAttached(ctx, "lamp", db["lamp"], mre.Attachment{UserID: "ghost", AttachPoint: "head"})
	assert.ErrorIs(t, err, mre.ErrUserNotFound)
}
