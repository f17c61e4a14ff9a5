// Package contentpack loads content packs: remotely hosted JSON documents that
// enumerate the artifacts of a session.
//
// A pack maps artifact keys to Descriptors (display name, model resource or hosted
// library resource, attach point, grab and physics flags, optional transform).
// The id comes from the session startup parameters "cpack" or "content_pack"
// (IDFromParams); no id means an empty database.
//
// # Sources
//
//   - HTTPFetcher: GET https://<host>/api/content_packs/<id>/raw.json
//   - StorageFetcher: object content_packs/<id>/raw.json in the asset bucket
//
// Fetch or parse failures are returned as errors naming the pack id; the session
// refuses to start without its pack.
//
// # HTTP Endpoints
//
//   - GET /packs/:id : the artifact database.
//   - GET /packs/:id/integrity : descriptor validation and model presence in storage.
package contentpack
