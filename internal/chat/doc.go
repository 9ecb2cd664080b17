// Package chat implements the room registry, room membership and broadcast,
// and the per-connection session state machine of the chat relay.
//
// A Registry is created once per process and handed to a Factory, which the
// transport uses to build one Session per connection. Sessions decode inbound
// envelopes into Commands and drive Room operations; Rooms fan messages out to
// every member on a best-effort basis.
package chat
