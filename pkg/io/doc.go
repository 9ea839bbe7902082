// Package io reads and writes canvas snapshots and verified trees.
//
// # Snapshot Format
//
// A snapshot captures everything the verifier needs: the node and edge
// arrays (tombstones implied by missing ids), the labels, and the root.
//
//	{
//	  "root": 0,
//	  "nodes": [
//	    {"id": 0, "label": 10, "black": true},
//	    {"id": 1, "label": 5, "black": true},
//	    {"id": 3, "black": false}
//	  ],
//	  "edges": [
//	    {"id": 0, "from": 0, "to": 1}
//	  ]
//	}
//
// Node 3 has no label yet and slot 2 is a tombstone. The optional
// "node_slots" and "edge_slots" fields pin the array lengths so trailing
// tombstones survive a round trip; when omitted they are derived from the
// highest id.
//
// The same document can be written as TOML:
//
//	root = 0
//
//	[[nodes]]
//	id = 0
//	label = 10
//	black = true
//
//	[[edges]]
//	id = 0
//	from = 0
//	to = 1
//
// # Import and Export
//
// [ReadJSON]/[WriteJSON] and [ReadTOML]/[WriteTOML] work on streams.
// [Import] and [Export] work on paths and pick the format from the file
// extension (.json or .toml).
//
// # Trees
//
// [EncodeTree] and [DecodeTree] serialize a linked tree array, for example
// to cache the last known good tree between CLI invocations.
package io
