package cmd

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"arhat.dev/canbot/pkg/configure"
	"arhat.dev/canbot/pkg/wait"
)

// fakeProvider exposes one CAN device that shows up after a fixed number
// of enumeration polls and records every mutation issued.
type fakeProvider struct {
	polls       int
	appearAfter int

	name       string
	busAddress string
	up         bool
	bitrate    uint32

	ops     []string
	downErr error
}

func (f *fakeProvider) Interfaces() ([]string, error) {
	f.polls++
	if f.polls > f.appearAfter {
		return []string{f.name}, nil
	}

	return nil, nil
}

func (f *fakeProvider) BusAddress(name string) (string, error) {
	return f.busAddress, nil
}

func (f *fakeProvider) IsUp(name string) (bool, error) {
	return f.up, nil
}

func (f *fakeProvider) Bitrate(name string) (uint32, error) {
	return f.bitrate, nil
}

func (f *fakeProvider) SetUp(name string) error {
	f.up = true
	f.ops = append(f.ops, "up "+name)
	return nil
}

func (f *fakeProvider) SetDown(name string) error {
	if f.downErr != nil {
		return f.downErr
	}

	f.up = false
	f.ops = append(f.ops, "down "+name)
	return nil
}

func (f *fakeProvider) SetBitrate(name string, bitrate uint32) error {
	f.bitrate = bitrate
	f.ops = append(f.ops, fmt.Sprintf("bitrate %s %d", name, bitrate))
	return nil
}

func (f *fakeProvider) Rename(name, newName string) error {
	f.name = newName
	f.ops = append(f.ops, fmt.Sprintf("rename %s %s", name, newName))
	return nil
}

func TestWaitAndConfigure(t *testing.T) {
	target := configure.Target{Name: "can0", Bitrate: 500000}

	t.Run("Configures Once After Device Appears", func(t *testing.T) {
		p := &fakeProvider{
			appearAfter: 2,
			name:        "can1",
			busAddress:  "1-3:1.0",
			bitrate:     125000,
		}

		err := waitAndConfigure(context.TODO(), p, "1-3:1.0", target, time.Second, 10*time.Millisecond)
		require.NoError(t, err)

		// one full configure pass, no repeated mutations
		assert.Equal(t, []string{
			"down can1",
			"bitrate can1 500000",
			"up can1",
			"down can1",
			"rename can1 can0",
			"up can0",
		}, p.ops)
		assert.Equal(t, "can0", p.name)
		assert.True(t, p.up)
		assert.Equal(t, uint32(500000), p.bitrate)
	})

	t.Run("Timeout Without Device", func(t *testing.T) {
		p := &fakeProvider{
			appearAfter: 1 << 30,
			name:        "can1",
			busAddress:  "1-3:1.0",
		}

		err := waitAndConfigure(context.TODO(), p, "1-3:1.0", target, 30*time.Millisecond, 10*time.Millisecond)
		assert.ErrorIs(t, err, wait.ErrTimeout)
		assert.Empty(t, p.ops)
	})

	t.Run("Configuration Failure Propagates", func(t *testing.T) {
		p := &fakeProvider{
			name:       "can1",
			busAddress: "1-3:1.0",
			bitrate:    125000,
			downErr:    fmt.Errorf("device busy"),
		}

		err := waitAndConfigure(context.TODO(), p, "1-3:1.0", target, time.Second, 10*time.Millisecond)
		assert.Error(t, err)
		assert.False(t, errors.Is(err, wait.ErrTimeout))
		assert.Empty(t, p.ops)
	})
}
