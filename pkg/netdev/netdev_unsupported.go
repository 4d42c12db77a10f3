// +build !linux

package netdev

import (
	"fmt"
)

func NewProvider() (*Provider, error) {
	return nil, fmt.Errorf("unsupported platform for CAN interface management")
}

type Provider struct {
}

func (p *Provider) Close() {}

func (p *Provider) Interfaces() ([]string, error) {
	return nil, fmt.Errorf("unsupported")
}

func (p *Provider) BusAddress(name string) (string, error) {
	return "", fmt.Errorf("unsupported")
}

func (p *Provider) IsUp(name string) (bool, error) {
	return false, fmt.Errorf("unsupported")
}

func (p *Provider) Bitrate(name string) (uint32, error) {
	return 0, fmt.Errorf("unsupported")
}

func (p *Provider) SetUp(name string) error {
	return fmt.Errorf("unsupported")
}

func (p *Provider) SetDown(name string) error {
	return fmt.Errorf("unsupported")
}

func (p *Provider) SetBitrate(name string, bitrate uint32) error {
	return fmt.Errorf("unsupported")
}

func (p *Provider) Rename(name, newName string) error {
	return fmt.Errorf("unsupported")
}
