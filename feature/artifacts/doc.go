// Package artifacts turns content-pack descriptors into live actors.
//
//   - Preloader loads model resources concurrently and caches each artifact's
//     prefab in a PrefabCache. Failures are logged per artifact and never abort
//     the rest of the pack.
//   - Spawner places hosted library artifacts in the shared space (SpawnAll) and
//     creates worn items attached to a user (SpawnAttached).
//   - ResolveTransform applies transform defaults: position (0,1,0), unit scale,
//     no rotation. Rotations are Euler degrees applied X, then Y, then Z.
package artifacts
