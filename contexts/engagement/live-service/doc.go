// Package liveservice fans out record activity to connected clients.
//
// The hub keeps per-partition subscriber channels and pushes broadcast
// events to every session except the one that produced them. An optional
// Redis bridge relays broadcasts between API instances so a subscriber
// sees events regardless of which instance handled the originating
// request. Transport is server-sent events.
package liveservice
