package result

import (
	"encoding/json"
	"errors"
	"strconv"
	"strings"

	"github.com/nspcc-dev/neo3-sdk-go/pkg/config"
	"github.com/nspcc-dev/neo3-sdk-go/pkg/crypto/keys"
	"github.com/nspcc-dev/neo3-sdk-go/pkg/encoding/fixedn"
)

// RPC describes the RPC-server-specific capabilities a node reports in
// its getversion response.
type RPC struct {
	MaxIteratorResultItems  int  `json:"maxiteratorresultitems"`
	SessionEnabled          bool `json:"sessionenabled"`
	SessionExpansionEnabled bool `json:"sessionexpirationenabled,omitempty"`
}

// Application describes NeoGo-specific node extensions a C# reference
// node won't report.
type Application struct {
	SaveInvocations         bool `json:"saveinvocations"`
	KeepOnlyLatestState     bool `json:"keeponlylateststate"`
	RemoveUntraceableBlocks bool `json:"removeuntraceableblocks"`
}

// Protocol groups the consensus-level parameters a node's chain is
// configured with.
type Protocol struct {
	AddressVersion              byte
	Network                     uint32
	MillisecondsPerBlock         uint32
	MaxTraceableBlocks          uint32
	MaxValidUntilBlockIncrement uint32
	MaxTransactionsPerBlock     uint32
	MemoryPoolMaxTransactions   int
	ValidatorsCount             byte
	InitialGasDistribution      fixedn.Fixed8
	Hardforks                   map[config.Hardfork]uint32
	StandbyCommittee            keys.PublicKeys
	SeedList                    []string
}

type hardforkAux struct {
	Name        string `json:"name"`
	BlockHeight uint32 `json:"blockheight"`
}

type protocolAux struct {
	AddressVersion              byte            `json:"addressversion"`
	Network                     uint32          `json:"network"`
	MillisecondsPerBlock        uint32          `json:"msperblock"`
	MaxTraceableBlocks          uint32          `json:"maxtraceableblocks"`
	MaxValidUntilBlockIncrement uint32          `json:"maxvaliduntilblockincrement"`
	MaxTransactionsPerBlock     uint32          `json:"maxtransactionsperblock"`
	MemoryPoolMaxTransactions   int             `json:"memorypoolmaxtransactions"`
	ValidatorsCount             byte            `json:"validatorscount"`
	InitialGasDistribution      json.RawMessage `json:"initialgasdistribution"`
	Hardforks                   []hardforkAux   `json:"hardforks,omitempty"`
	StandbyCommittee            []string        `json:"standbycommittee,omitempty"`
	SeedList                    []string        `json:"seedlist,omitempty"`
}

// MarshalJSON implements the json.Marshaler interface.
func (p Protocol) MarshalJSON() ([]byte, error) {
	hfs := make([]hardforkAux, 0, len(p.Hardforks))
	for _, name := range config.Hardforks {
		if height, ok := p.Hardforks[name]; ok {
			hfs = append(hfs, hardforkAux{Name: string(name), BlockHeight: height})
		}
	}
	committee := make([]string, len(p.StandbyCommittee))
	for i, pub := range p.StandbyCommittee {
		committee[i] = pub.String()
	}
	gas, err := json.Marshal(int64(p.InitialGasDistribution))
	if err != nil {
		return nil, err
	}
	return json.Marshal(protocolAux{
		AddressVersion:              p.AddressVersion,
		Network:                     p.Network,
		MillisecondsPerBlock:        p.MillisecondsPerBlock,
		MaxTraceableBlocks:          p.MaxTraceableBlocks,
		MaxValidUntilBlockIncrement: p.MaxValidUntilBlockIncrement,
		MaxTransactionsPerBlock:     p.MaxTransactionsPerBlock,
		MemoryPoolMaxTransactions:   p.MemoryPoolMaxTransactions,
		ValidatorsCount:             p.ValidatorsCount,
		InitialGasDistribution:      gas,
		Hardforks:                   hfs,
		StandbyCommittee:            committee,
		SeedList:                    p.SeedList,
	})
}

// UnmarshalJSON implements the json.Unmarshaler interface. It requires
// StandbyCommittee to be present, rejecting the pre-hardfork RPC
// response shape older servers used to send.
func (p *Protocol) UnmarshalJSON(data []byte) error {
	var aux protocolAux
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if len(aux.StandbyCommittee) == 0 {
		return errors.New("result: protocol response is missing standbycommittee, too old a server")
	}
	gas, err := decodeInitialGasDistribution(aux.InitialGasDistribution)
	if err != nil {
		return err
	}
	committee, err := keys.NewPublicKeysFromStrings(aux.StandbyCommittee)
	if err != nil {
		return err
	}
	hardforks := make(map[config.Hardfork]uint32, len(aux.Hardforks))
	for _, hf := range aux.Hardforks {
		hardforks[config.Hardfork(strings.TrimPrefix(hf.Name, "HF_"))] = hf.BlockHeight
	}
	p.AddressVersion = aux.AddressVersion
	p.Network = aux.Network
	p.MillisecondsPerBlock = aux.MillisecondsPerBlock
	p.MaxTraceableBlocks = aux.MaxTraceableBlocks
	p.MaxValidUntilBlockIncrement = aux.MaxValidUntilBlockIncrement
	p.MaxTransactionsPerBlock = aux.MaxTransactionsPerBlock
	p.MemoryPoolMaxTransactions = aux.MemoryPoolMaxTransactions
	p.ValidatorsCount = aux.ValidatorsCount
	p.InitialGasDistribution = gas
	p.Hardforks = hardforks
	p.StandbyCommittee = committee
	p.SeedList = aux.SeedList
	return nil
}

// decodeInitialGasDistribution accepts either a bare JSON number (the
// value already scaled as Fixed8 satoshis, as new servers send it) or
// a quoted decimal string (the face GAS amount, as old servers sent
// it).
func decodeInitialGasDistribution(data json.RawMessage) (fixedn.Fixed8, error) {
	if len(data) == 0 {
		return 0, errors.New("result: missing initialgasdistribution")
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return 0, err
		}
		v, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return 0, err
		}
		return fixedn.Fixed8FromInt64(v), nil
	}
	var v int64
	if err := json.Unmarshal(data, &v); err != nil {
		return 0, err
	}
	return fixedn.Fixed8(v), nil
}

// Version is the result of a getversion RPC call, describing the
// responding node's network, protocol parameters and RPC-server
// capabilities.
type Version struct {
	TCPPort     uint16
	WSPort      uint16
	Nonce       uint32
	UserAgent   string
	RPC         RPC
	Protocol    Protocol
	Application Application
}

type versionAux struct {
	TCPPort     uint16      `json:"tcpport"`
	WSPort      uint16      `json:"wsport,omitempty"`
	Nonce       uint32      `json:"nonce"`
	UserAgent   string      `json:"useragent"`
	RPC         RPC         `json:"rpc"`
	Protocol    Protocol    `json:"protocol"`
	Application Application `json:"application,omitempty"`
}

// MarshalJSON implements the json.Marshaler interface.
func (v Version) MarshalJSON() ([]byte, error) {
	return json.Marshal(versionAux{
		TCPPort:     v.TCPPort,
		WSPort:      v.WSPort,
		Nonce:       v.Nonce,
		UserAgent:   v.UserAgent,
		RPC:         v.RPC,
		Protocol:    v.Protocol,
		Application: v.Application,
	})
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (v *Version) UnmarshalJSON(data []byte) error {
	var aux versionAux
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	v.TCPPort = aux.TCPPort
	v.WSPort = aux.WSPort
	v.Nonce = aux.Nonce
	v.UserAgent = aux.UserAgent
	v.RPC = aux.RPC
	v.Protocol = aux.Protocol
	v.Application = aux.Application
	return nil
}
