// +build linux

package netdev

import (
	"fmt"
	"net"

	"github.com/safchain/ethtool"

	"arhat.dev/canbot/pkg/wrap/netlink"
)

// NewProvider returns a CAN interface provider backed by rtnetlink for link
// operations and the ethtool ioctl for bus-info lookup.
func NewProvider() (*Provider, error) {
	et, err := ethtool.NewEthtool()
	if err != nil {
		return nil, fmt.Errorf("failed to open ethtool ioctl socket: %w", err)
	}

	return &Provider{
		h:  &netlink.Handle{},
		et: et,
	}, nil
}

type Provider struct {
	h  *netlink.Handle
	et *ethtool.Ethtool
}

func (p *Provider) Close() {
	p.et.Close()
}

func (p *Provider) Interfaces() ([]string, error) {
	links, err := p.h.LinkList()
	if err != nil {
		return nil, fmt.Errorf("failed to list links: %w", err)
	}

	var names []string
	for _, link := range links {
		if link.Type() != (&netlink.Can{}).Type() {
			continue
		}

		names = append(names, link.Attrs().Name)
	}

	return names, nil
}

func (p *Provider) BusAddress(name string) (string, error) {
	busInfo, err := p.et.BusInfo(name)
	if err != nil {
		return "", fmt.Errorf("failed to read bus-info of %s: %w", name, err)
	}

	return busInfo, nil
}

func (p *Provider) IsUp(name string) (bool, error) {
	link, err := p.findLink(name)
	if err != nil {
		return false, err
	}

	// administrative state, CAN links commonly report unknown OperState
	// even while up
	return link.Attrs().Flags&net.FlagUp != 0, nil
}

func (p *Provider) Bitrate(name string) (uint32, error) {
	link, err := p.findLink(name)
	if err != nil {
		return 0, err
	}

	can, ok := link.(*netlink.Can)
	if !ok {
		return 0, fmt.Errorf("link %s is not a CAN device (type %s)", name, link.Type())
	}

	return can.BitRate, nil
}

func (p *Provider) SetUp(name string) error {
	link, err := p.findLink(name)
	if err != nil {
		return err
	}

	err = p.h.LinkSetUp(link)
	if err != nil {
		return fmt.Errorf("failed to set link %s up: %w", name, err)
	}

	return nil
}

func (p *Provider) SetDown(name string) error {
	link, err := p.findLink(name)
	if err != nil {
		return err
	}

	err = p.h.LinkSetDown(link)
	if err != nil {
		return fmt.Errorf("failed to set link %s down: %w", name, err)
	}

	return nil
}

func (p *Provider) SetBitrate(name string, bitrate uint32) error {
	link, err := p.findLink(name)
	if err != nil {
		return err
	}

	attrs := netlink.NewLinkAttrs()
	attrs.Name = name
	attrs.Index = link.Attrs().Index

	err = p.h.LinkModify(&netlink.Can{
		LinkAttrs: attrs,
		BitRate:   bitrate,
	})
	if err != nil {
		return fmt.Errorf("failed to set bitrate of %s to %d: %w", name, bitrate, err)
	}

	return nil
}

func (p *Provider) Rename(name, newName string) error {
	link, err := p.findLink(name)
	if err != nil {
		return err
	}

	err = p.h.LinkSetName(link, newName)
	if err != nil {
		return fmt.Errorf("failed to rename link %s to %s: %w", name, newName, err)
	}

	return nil
}

func (p *Provider) findLink(name string) (netlink.Link, error) {
	link, err := p.h.LinkByName(name)
	if err != nil {
		if _, ok := err.(netlink.LinkNotFoundError); ok {
			return nil, fmt.Errorf("link %s not found", name)
		}

		return nil, fmt.Errorf("failed to check status of %s: %w", name, err)
	}

	return link, nil
}
