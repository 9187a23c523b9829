// Package network carries the few P2P-facing shapes the RPC result
// types need to describe a node's peer list; it does not implement
// any P2P protocol itself (out of scope for this module, see
// spec Non-goals).
package network

// PeerInfo describes one peer as the P2P layer would report it to an
// RPC result builder: a combined "host:port" address (result.GetPeers
// splits it back apart), its advertised user agent and chain height.
type PeerInfo struct {
	Address   string
	UserAgent string
	Height    uint32
}
