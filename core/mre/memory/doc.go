// Package memory is an in-process mixed-reality runtime.
//
// It implements mre.Runtime for a single hosted session: users join and leave
// through Join and Leave, actors live in an in-memory graph, model containers are
// read from a ModelSource (object storage in production), and every state change
// is published as an mre.Event to the installed Publisher (the websocket relay).
//
// Newly connected clients receive a Snapshot of actor state without attachment
// relationships; attachments only travel as actor-updated events. A client that
// joins after an item was attached therefore sees it only after the next
// detach/reattach, which is what the periodic attachment resync provides.
package memory
