// Package ws relays a hosted session to websocket clients.
//
// A client connects to GET /session?name=<display name>. The relay assigns a
// fresh user id, sends a welcome message carrying the current actor
// snapshot, joins the user to the runtime and then streams every runtime
// event. Clients may send {"type":"wear","artifact":"<key>"} and get back
// {"type":"worn","artifact":"<key>","actor_id":"<id>"}. Closing the
// connection makes the user leave.
package ws
