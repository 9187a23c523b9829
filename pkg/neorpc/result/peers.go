package result

import (
	"encoding/json"
	"net"
	"strconv"

	"github.com/nspcc-dev/neo3-sdk-go/pkg/network"
)

// Peer is a single network address as reported by getpeers, with its
// address and port already split apart.
type Peer struct {
	Address         string
	Port            uint16
	UserAgent       string
	LastKnownHeight uint32
}

// GetPeers is the result of a getpeers RPC call: the node's current
// view of its connected, known-but-unconnected and misbehaving peers.
type GetPeers struct {
	Unconnected []Peer `json:"unconnected"`
	Connected   []Peer `json:"connected"`
	Bad         []Peer `json:"bad"`
}

// NewGetPeers creates an empty GetPeers result.
func NewGetPeers() *GetPeers {
	return &GetPeers{
		Unconnected: []Peer{},
		Connected:   []Peer{},
		Bad:         []Peer{},
	}
}

// splitHostPort splits a "host:port" (or bracketed "[host]:port") peer
// address, rejecting ambiguous unbracketed IPv6-looking forms the way
// net.SplitHostPort does.
func splitHostPort(addr string) (string, uint16, error) {
	host, portStr, err := net.SplitHostPort(addr)
	if err != nil {
		return "", 0, err
	}
	port, err := strconv.ParseUint(portStr, 10, 16)
	if err != nil {
		return "", 0, err
	}
	return host, uint16(port), nil
}

// AddUnconnected appends peers, given as "host:port" strings, to the
// unconnected list, skipping any that fail to parse.
func (p *GetPeers) AddUnconnected(addrs []string) {
	for _, a := range addrs {
		host, port, err := splitHostPort(a)
		if err != nil {
			continue
		}
		p.Unconnected = append(p.Unconnected, Peer{Address: host, Port: port})
	}
}

// AddBad appends peers, given as "host:port" strings, to the bad list,
// skipping any that fail to parse.
func (p *GetPeers) AddBad(addrs []string) {
	for _, a := range addrs {
		host, port, err := splitHostPort(a)
		if err != nil {
			continue
		}
		p.Bad = append(p.Bad, Peer{Address: host, Port: port})
	}
}

// AddConnected appends peers, each carrying a "host:port" address plus
// the extra information a connected peer reports, to the connected
// list, skipping any whose address fails to parse.
func (p *GetPeers) AddConnected(infos []network.PeerInfo) {
	for _, info := range infos {
		host, port, err := splitHostPort(info.Address)
		if err != nil {
			continue
		}
		p.Connected = append(p.Connected, Peer{
			Address:         host,
			Port:            port,
			UserAgent:       info.UserAgent,
			LastKnownHeight: info.Height,
		})
	}
}

type peerAux struct {
	Address string      `json:"address"`
	Port    json.Number `json:"port"`
}

// MarshalJSON implements the json.Marshaler interface, rendering the
// address and port back into the wire's combined form.
func (p Peer) MarshalJSON() ([]byte, error) {
	return json.Marshal(peerAux{
		Address: p.Address,
		Port:    json.Number(strconv.FormatUint(uint64(p.Port), 10)),
	})
}

// UnmarshalJSON implements the json.Unmarshaler interface, accepting
// the peer port as either a quoted string (older servers) or a bare
// number.
func (p *Peer) UnmarshalJSON(data []byte) error {
	var aux peerAux
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	port, err := strconv.ParseUint(string(aux.Port), 10, 16)
	if err != nil {
		return err
	}
	p.Address = aux.Address
	p.Port = uint16(port)
	return nil
}
