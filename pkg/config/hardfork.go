// Package config holds protocol-level configuration values the RPC
// layer needs to decode node responses, independent of any concrete
// node/host configuration file format.
package config

// Hardfork identifies a named Neo N3 protocol upgrade a node may
// report as active (or scheduled) in its getversion response.
type Hardfork string

// Recognized hardfork names, in activation order. A node's own name
// for these may or may not carry the "HF_" prefix the C# reference
// node uses; Version's JSON codec strips it on input.
const (
	HFAspidochelone Hardfork = "Aspidochelone"
	HFBasilisk      Hardfork = "Basilisk"
	HFCockatrice    Hardfork = "Cockatrice"
	HFDomovoi       Hardfork = "Domovoi"
	HFEchidna       Hardfork = "Echidna"
)

// Hardforks lists every hardfork this module recognizes, in
// activation order.
var Hardforks = []Hardfork{HFAspidochelone, HFBasilisk, HFCockatrice, HFDomovoi, HFEchidna}
