package memory

import (
	"bytes"
	"context"
	"errors"
	"io"
	"sync"
	"testing"

	"artifact-host/core/mre"
	"artifact-host/core/storage/mocks"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type staticModels map[string][]byte

func (s staticModels) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	data, ok := s[name]
	if !ok {
		return nil, errors.New("no such model")
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

type recorder struct {
	mu     sync.Mutex
	events []mre.Event
}

func (r *recorder) Publish(evt mre.Event) {
	r.mu.Lock()
	r.events = append(r.events, evt)
	r.mu.Unlock()
}

func (r *recorder) types() []mre.EventType {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]mre.EventType, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, e.Type)
	}
	return out
}

func TestLoadAssets(t *testing.T) {
	rt := New(staticModels{
		"hat.glb":    append([]byte("glTF"), 2, 0, 0, 0),
		"cup.gltf":   []byte(`{"asset":{"version":"2.0"}}`),
		"empty.glb":  {},
		"broken.obj": []byte("v 1 2 3"),
	}, nil)
	ctx := context.Background()

	t.Run("Binary", func(t *testing.T) {
		assets, err := rt.LoadAssets(ctx, "hat.glb")
		require.NoError(t, err)
		require.Len(t, assets, 2)
		assert.Equal(t, mre.AssetMesh, assets[0].Kind)
		assert.Equal(t, mre.AssetPrefab, assets[1].Kind)
		assert.Equal(t, "glb", assets[1].Source)
	})

	t.Run("JSON", func(t *testing.T) {
		assets, err := rt.LoadAssets(ctx, "cup.gltf")
		require.NoError(t, err)
		assert.Equal(t, "gltf", assets[1].Source)
	})

	t.Run("Empty", func(t *testing.T) {
		_, err := rt.LoadAssets(ctx, "empty.glb")
		assert.ErrorIs(t, err, ErrEmptyModel)
	})

	t.Run("Unsupported", func(t *testing.T) {
		_, err := rt.LoadAssets(ctx, "broken.obj")
		assert.ErrorIs(t, err, ErrUnsupportedModel)
	})

	t.Run("Missing", func(t *testing.T) {
		_, err := rt.LoadAssets(ctx, "nope.glb")
		assert.ErrorContains(t, err, "nope.glb")
	})

	t.Run("UnloadForgetsPrefabs", func(t *testing.T) {
		_, err := rt.CreateFromPrefab(ctx, "hat.glb#prefab", mre.ActorSpec{})
		require.NoError(t, err)
		require.NoError(t, rt.UnloadAssets())
		_, err = rt.CreateFromPrefab(ctx, "hat.glb#prefab", mre.ActorSpec{})
		assert.ErrorIs(t, err, ErrAssetNotFound)
	})
}

func TestStorageModelSource(t *testing.T) {
	client := new(mocks.Client)
	client.On("GetObject", mock.Anything, "artifacts", "models/hat.glb", mock.Anything).
		Return(io.NopCloser(bytes.NewReader([]byte("glTF...."))), nil)

	src := NewStorageModelSource(client, "artifacts", "models/")
	assert.Equal(t, "models/hat.glb", src.ObjectName("/hat.glb"))

	rt := New(src, nil)
	assets, err := rt.LoadAssets(context.Background(), "hat.glb")
	require.NoError(t, err)
	assert.Len(t, assets, 2)

	// Second load is served from the container cache.
	_, err = rt.LoadAssets(context.Background(), "hat.glb")
	require.NoError(t, err)
	client.AssertNumberOfCalls(t, "GetObject", 1)
	client.AssertCalled(t, "GetObject", mock.Anything, "artifacts", "models/hat.glb", minio.GetObjectOptions{})
}

func TestActorLifecycle(t *testing.T) {
	rec := &recorder{}
	rt := New(nil, nil)
	rt.SetPublisher(rec)
	ctx := context.Background()

	var joined, left []mre.UserID
	rt.OnUserJoined(func(u mre.User) { joined = append(joined, u.ID) })
	rt.OnUserLeft(func(u mre.User) { left = append(left, u.ID) })

	rt.Join(mre.User{ID: "u1", Name: "Ada"})
	assert.Equal(t, []mre.UserID{"u1"}, joined)

	a, err := rt.CreateFromLibrary(ctx, "artifact:1", mre.ActorSpec{Name: "hat", Transform: mre.IdentityTransform()})
	require.NoError(t, err)

	_, ok := a.Attachment()
	assert.False(t, ok)

	require.NoError(t, a.Attach("u1", "head"))
	att, ok := a.Attachment()
	require.True(t, ok)
	assert.Equal(t, mre.Attachment{UserID: "u1", AttachPoint: "head"}, att)

	assert.ErrorIs(t, a.Attach("ghost", "head"), mre.ErrUserNotFound)

	t.Run("SnapshotOmitsAttachments", func(t *testing.T) {
		snap := rt.Snapshot()
		require.Len(t, snap, 1)
		assert.Nil(t, snap[0].Attachment)

		full := rt.Actors()
		require.NotNil(t, full[0].Attachment)
		assert.Equal(t, "head", full[0].Attachment.AttachPoint)
	})

	require.NoError(t, a.SetGrabbable(true))
	require.NoError(t, a.EnableRigidBody(mre.RigidBody{DetectCollisions: true}))
	st := rt.Actors()[0]
	assert.True(t, st.Grabbable)
	require.NotNil(t, st.RigidBody)
	assert.True(t, st.RigidBody.DetectCollisions)

	rt.Leave("u1")
	assert.Equal(t, []mre.UserID{"u1"}, left)
	_, ok = a.Attachment()
	assert.False(t, ok, "runtime detaches items of departed users")
	assert.Empty(t, rt.Users())

	require.NoError(t, a.Destroy())
	assert.ErrorIs(t, a.Destroy(), mre.ErrActorNotFound)
	assert.ErrorIs(t, a.Detach(), mre.ErrActorNotFound)
	assert.ErrorIs(t, a.SetGrabbable(false), mre.ErrActorNotFound)
	assert.Empty(t, rt.Actors())

	assert.Equal(t, []mre.EventType{
		mre.EventUserJoined,
		mre.EventActorCreated,
		mre.EventActorUpdated, // attach
		mre.EventActorUpdated, // grabbable
		mre.EventActorUpdated, // rigid body
		mre.EventActorUpdated, // detach on leave
		mre.EventUserLeft,
		mre.EventActorDestroyed,
	}, rec.types())
}

func TestUserHandlers(t *testing.T) {
	rt := New(nil, nil)

	var calls []string
	rt.OnUserJoined(func(u mre.User) {
		calls = append(calls, "join-1:"+string(u.ID))
		// Registered during dispatch; only runs for later joins.
		rt.OnUserJoined(func(u mre.User) { calls = append(calls, "join-late:"+string(u.ID)) })
	})
	rt.OnUserJoined(func(u mre.User) { calls = append(calls, "join-2:"+string(u.ID)) })
	rt.OnUserLeft(func(u mre.User) { calls = append(calls, "left:"+string(u.ID)) })

	rt.Join(mre.User{ID: "u1"})
	assert.Equal(t, []string{"join-1:u1", "join-2:u1"}, calls)

	calls = nil
	rt.Leave("u1")
	rt.Leave("u1")
	assert.Equal(t, []string{"left:u1"}, calls, "unknown users do not reach handlers")

	calls = nil
	rt.Join(mre.User{ID: "u2"})
	assert.Equal(t, []string{"join-1:u2", "join-2:u2", "join-late:u2"}, calls)
}

func TestCreateValidation(t *testing.T) {
	rt := New(nil, nil)
	ctx := context.Background()

	_, err := rt.CreateFromLibrary(ctx, "", mre.ActorSpec{})
	assert.Error(t, err)

	_, err = rt.CreatePrimitive(ctx, mre.ActorSpec{Attachment: &mre.Attachment{UserID: "ghost", AttachPoint: "head"}})
	assert.ErrorIs(t, err, mre.ErrUserNotFound)

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	_, err = rt.CreatePrimitive(cancelled, mre.ActorSpec{})
	assert.ErrorIs(t, err, context.Canceled)

	rt.Leave("ghost")
	assert.Empty(t, rt.Actors())
}
