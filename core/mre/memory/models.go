package memory

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"artifact-host/core/mre"
	"artifact-host/core/storage"

	"github.com/goccy/go-json"
	"github.com/minio/minio-go/v7"
)

var (
	// ErrEmptyModel is returned when a model object has no content.
	ErrEmptyModel = errors.New("empty model file")
	// ErrUnsupportedModel is returned when a model is neither binary glTF nor glTF JSON.
	ErrUnsupportedModel = errors.New("unsupported model format")
)

var glbMagic = []byte("glTF")

// ModelSource opens model files by resource name.
type ModelSource interface {
	Open(ctx context.Context, resourceName string) (io.ReadCloser, error)
}

// StorageModelSource reads model files from an object storage bucket.
type StorageModelSource struct {
	client storage.Client
	bucket string
	prefix string
}

// NewStorageModelSource creates a model source reading <prefix><resourceName> objects.
func NewStorageModelSource(client storage.Client, bucket, prefix string) *StorageModelSource {
	return &StorageModelSource{client: client, bucket: bucket, prefix: prefix}
}

// ObjectName returns the storage key of a model resource.
func (s *StorageModelSource) ObjectName(resourceName string) string {
	return s.prefix + strings.TrimPrefix(resourceName, "/")
}

// Open implements ModelSource.
func (s *StorageModelSource) Open(ctx context.Context, resourceName string) (io.ReadCloser, error) {
	return s.client.GetObject(ctx, s.bucket, s.ObjectName(resourceName), minio.GetObjectOptions{})
}

// decodeContainer sniffs the model format and lists the container's assets.
// Every container yields a mesh followed by the spawnable prefab.
func decodeContainer(resourceName string, data []byte) ([]mre.Asset, error) {
	if len(data) == 0 {
		return nil, ErrEmptyModel
	}

	var format string
	switch {
	case bytes.HasPrefix(data, glbMagic):
		format = "glb"
	case json.Valid(data):
		format = "gltf"
	default:
		return nil, ErrUnsupportedModel
	}

	assets := []mre.Asset{
		{ID: fmt.Sprintf("%s#mesh", resourceName), Name: resourceName, Kind: mre.AssetMesh, Source: format},
		{ID: fmt.Sprintf("%s#prefab", resourceName), Name: resourceName, Kind: mre.AssetPrefab, Source: format},
	}
	return assets, nil
}
