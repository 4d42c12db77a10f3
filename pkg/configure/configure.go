package configure

import (
	"errors"
	"fmt"
	"strconv"

	"arhat.dev/pkg/log"
	"go.uber.org/multierr"

	"arhat.dev/canbot/pkg/types"
)

var (
	ErrDeviceNotFound    = errors.New("device not found")
	ErrCountMismatch     = errors.New("interface count mismatch")
	ErrUnknownBusAddress = errors.New("unknown bus address")
)

// Target is the desired state for one CAN interface.
type Target struct {
	Name    string
	Bitrate uint32
}

func New(provider types.Provider) *Configurator {
	return &Configurator{
		logger:   log.Log,
		provider: provider,
	}
}

type Configurator struct {
	logger   log.Interface
	provider types.Provider
}

// Single brings exactly one CAN interface to the target state. When
// busAddress is empty exactly one CAN interface must exist on the host,
// zero or multiple is an error rather than an arbitrary pick.
func (c *Configurator) Single(busAddress string, target Target) error {
	name, err := c.resolve(busAddress)
	if err != nil {
		return err
	}

	return c.reconcile(name, target)
}

// All reconciles every attached CAN interface against the bus address
// table. Preconditions: the table size and the detected interface count
// must both equal expected, and every discovered bus address must have a
// table entry. Any precondition failure aborts before a single interface
// is touched.
func (c *Configurator) All(targets map[string]Target, expected int) error {
	if len(targets) != expected {
		return fmt.Errorf("%w: %d target entries configured, expected %d devices",
			ErrCountMismatch, len(targets), expected)
	}

	names, err := c.provider.Interfaces()
	if err != nil {
		return fmt.Errorf("failed to list CAN interfaces: %w", err)
	}

	if len(names) != expected {
		return fmt.Errorf("%w: detected %d CAN interfaces, expected %d",
			ErrCountMismatch, len(names), expected)
	}

	// resolve every bus address up front, an unknown address must not
	// leave interfaces enumerated before it half configured
	resolvedTargets := make([]Target, 0, len(names))
	for _, name := range names {
		addr, err2 := c.provider.BusAddress(name)
		if err2 != nil {
			return fmt.Errorf("failed to read bus address of %s: %w", name, err2)
		}

		target, ok := targets[addr]
		if !ok {
			return fmt.Errorf("%w: interface %s at bus address %s has no target entry",
				ErrUnknownBusAddress, name, addr)
		}

		resolvedTargets = append(resolvedTargets, target)
	}

	for i, name := range names {
		err = multierr.Append(err, c.reconcile(name, resolvedTargets[i]))
	}

	return err
}

func (c *Configurator) resolve(busAddress string) (string, error) {
	names, err := c.provider.Interfaces()
	if err != nil {
		return "", fmt.Errorf("failed to list CAN interfaces: %w", err)
	}

	if busAddress == "" {
		switch len(names) {
		case 1:
			return names[0], nil
		case 0:
			return "", fmt.Errorf("%w: no CAN interface present", ErrDeviceNotFound)
		default:
			return "", fmt.Errorf("%w: %d CAN interfaces present, bus address required",
				ErrDeviceNotFound, len(names))
		}
	}

	for _, name := range names {
		addr, err := c.provider.BusAddress(name)
		if err != nil {
			return "", fmt.Errorf("failed to read bus address of %s: %w", name, err)
		}

		if addr == busAddress {
			return name, nil
		}
	}

	return "", fmt.Errorf("%w: no CAN interface at bus address %s", ErrDeviceNotFound, busAddress)
}

func (c *Configurator) reconcile(name string, target Target) error {
	up, err := c.provider.IsUp(name)
	if err != nil {
		return fmt.Errorf("failed to read link state of %s: %w", name, err)
	}

	bitrate, err := c.provider.Bitrate(name)
	if err != nil {
		return fmt.Errorf("failed to read bitrate of %s: %w", name, err)
	}

	if up && bitrate == target.Bitrate {
		if name == target.Name {
			c.logger.I("interface already configured", log.String("ifname", name))
			return nil
		}

		return c.rename(name, target.Name)
	}

	c.logger.I("configuring interface",
		log.String("ifname", name),
		log.String("bitrate", strconv.FormatUint(uint64(target.Bitrate), 10)),
	)

	err = c.provider.SetDown(name)
	if err != nil {
		return fmt.Errorf("failed to set %s down: %w", name, err)
	}

	err = c.provider.SetBitrate(name, target.Bitrate)
	if err != nil {
		return fmt.Errorf("failed to set bitrate of %s: %w", name, err)
	}

	err = c.provider.SetUp(name)
	if err != nil {
		return fmt.Errorf("failed to set %s up: %w", name, err)
	}

	if name != target.Name {
		return c.rename(name, target.Name)
	}

	return nil
}

// rename requires the link down, and bitrate changes were applied in their
// own down/up cycle, so each transition stays atomic and observable.
func (c *Configurator) rename(name, newName string) error {
	c.logger.I("renaming interface", log.String("ifname", name), log.String("newName", newName))

	err := c.provider.SetDown(name)
	if err != nil {
		return fmt.Errorf("failed to set %s down: %w", name, err)
	}

	err = c.provider.Rename(name, newName)
	if err != nil {
		return fmt.Errorf("failed to rename %s to %s: %w", name, newName, err)
	}

	err = c.provider.SetUp(newName)
	if err != nil {
		return fmt.Errorf("failed to set %s up: %w", newName, err)
	}

	return nil
}
