// +build linux

package netlink

import (
	"github.com/vishvananda/netlink"
)

type (
	Handle            = netlink.Handle
	Link              = netlink.Link
	LinkAttrs         = netlink.LinkAttrs
	Can               = netlink.Can
	LinkNotFoundError = netlink.LinkNotFoundError
)

// functions
var (
	NewLinkAttrs = netlink.NewLinkAttrs
)
