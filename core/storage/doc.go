// Package storage provides an abstraction layer for object storage services.
//
// It wraps the MinIO Go client. The host reads two kinds of objects from the bucket:
// 3D model files (GLB/glTF) loaded by the in-process runtime, and content-pack
// JSON documents when packs are served from storage instead of HTTP.
//
// # Client Interface
//
// The Client interface abstracts the underlying storage provider so tests can use
// the testify mock in core/storage/mocks.
//
// # Usage
//
//	client, err := storage.NewClient(config)
//	reader, err := client.GetObject(ctx, "artifacts", "models/hat.glb", minio.GetObjectOptions{})
package storage
