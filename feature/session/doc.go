// Package session hosts one content-pack session on top of an mre.Runtime.
//
// The Controller owns the session lifecycle:
//
//   - Start resolves the content-pack id, loads the artifact database,
//     preloads models, spawns library artifacts and subscribes to user events.
//   - Each joining user gets a hidden trigger sphere attached at the tracker
//     point. Artifacts a user wears are spawned attached to them.
//   - A ResyncTimer periodically detaches and reattaches every registered
//     actor so that late joiners see current attachments.
//   - A leaving user's actors are detached and destroyed.
//   - Close stops the timer and releases loaded assets.
//
// Handler exposes the session state on the admin API.
package session
