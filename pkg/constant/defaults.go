package constant

import "time"

const (
	DefaultCanbotConfigFile = "/etc/canbot/config.yaml"
)

// Bring-up defaults for gs_usb class USB-to-CAN adapters.
const (
	DefaultInterfaceName = "can0"
	DefaultBitrate       = 1000000

	DefaultWaitTimeout  = 120 * time.Second
	DefaultPollInterval = 5 * time.Second

	DefaultDriverModule = "gs_usb"
)
