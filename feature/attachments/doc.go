// Package attachments keeps worn items attached for every session participant.
//
// The Registry maps each user to the actors attached to them. Resync performs a
// sweep over the registry: each actor is detached and immediately reattached at
// the same attach point, which makes the runtime rebroadcast the attachment to
// all clients, including ones that joined after the item was attached.
//
// ResyncTimer runs a sweep callback on a fixed interval (5s by default). Tests
// construct it with a zero interval and call Tick directly.
package attachments
