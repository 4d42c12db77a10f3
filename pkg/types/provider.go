package types

// Querier reads CAN interface state from the OS network stack. State is
// never cached by callers, every decision point re-queries.
type Querier interface {
	// Interfaces lists the names of all CAN-type links currently present.
	Interfaces() ([]string, error)

	// BusAddress returns the driver bus-info string of the interface,
	// identifying the physical USB port it is attached to.
	BusAddress(name string) (string, error)

	// IsUp reports the administrative link state of the interface.
	IsUp(name string) (bool, error)

	// Bitrate returns the currently configured bitrate in bits per second.
	Bitrate(name string) (uint32, error)
}

// Mutator applies administrative state changes to CAN interfaces.
type Mutator interface {
	SetUp(name string) error

	SetDown(name string) error

	// SetBitrate changes the CAN bittiming, the link must be down.
	SetBitrate(name string, bitrate uint32) error

	// Rename changes the interface name, the link must be down.
	Rename(name, newName string) error
}

// Provider of CAN interface query and mutation capabilities.
type Provider interface {
	Querier
	Mutator
}
