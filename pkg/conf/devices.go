package conf

import (
	"fmt"

	"arhat.dev/canbot/pkg/configure"
)

type DeviceConfig struct {
	// BusAddress is the ethtool bus-info string of the USB port the
	// adapter is attached to, stable across reboots for a given port.
	BusAddress string `json:"busAddress" yaml:"busAddress"`

	Name    string `json:"name" yaml:"name"`
	Bitrate uint32 `json:"bitrate" yaml:"bitrate"`
}

// TargetTable validates the device table and returns the desired state
// keyed by bus address, along with the expected device count.
func (c *CanbotConfig) TargetTable() (map[string]configure.Target, int, error) {
	if len(c.Devices) == 0 {
		return nil, 0, fmt.Errorf("no devices configured")
	}

	targets := make(map[string]configure.Target)
	for i, d := range c.Devices {
		if d.BusAddress == "" {
			return nil, 0, fmt.Errorf("invalid device #%d: no bus address", i)
		}

		if d.Name == "" {
			return nil, 0, fmt.Errorf("invalid device at %s: no interface name", d.BusAddress)
		}

		if d.Bitrate == 0 {
			return nil, 0, fmt.Errorf("invalid device at %s: no bitrate", d.BusAddress)
		}

		if _, ok := targets[d.BusAddress]; ok {
			return nil, 0, fmt.Errorf("invalid duplicate bus address %s", d.BusAddress)
		}

		targets[d.BusAddress] = configure.Target{
			Name:    d.Name,
			Bitrate: d.Bitrate,
		}
	}

	expected := c.ExpectedDevices
	if expected == 0 {
		expected = len(c.Devices)
	}

	if expected != len(c.Devices) {
		return nil, 0, fmt.Errorf("%d devices configured but %d expected", len(c.Devices), expected)
	}

	return targets, expected, nil
}
