package wait

import (
	"context"
	"errors"
	"fmt"
	"time"

	"arhat.dev/pkg/log"
	"github.com/avast/retry-go"

	"arhat.dev/canbot/pkg/types"
)

// ErrTimeout is returned when the device did not appear before the
// deadline.
var ErrTimeout = errors.New("timed out waiting for device")

var errNotPresent = errors.New("device not present")

// ForBusAddress blocks until a CAN interface with the given bus address is
// present, polling at the given interval, and returns its current name.
// Once timeout has elapsed without a match it fails with ErrTimeout. Query
// failures other than absence of the device are not retried.
func ForBusAddress(
	ctx context.Context,
	q types.Querier,
	busAddress string,
	timeout, interval time.Duration,
) (string, error) {
	if busAddress == "" {
		return "", fmt.Errorf("no bus address given")
	}

	waitCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var found string
	err := retry.Do(
		func() error {
			name, err := lookup(q, busAddress)
			if err != nil {
				return err
			}

			found = name
			return nil
		},
		retry.Context(waitCtx),
		retry.Attempts(attempts(timeout, interval)),
		retry.Delay(interval),
		retry.DelayType(retry.FixedDelay),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			log.Log.I("device not yet present, waiting", log.String("busAddress", busAddress))
		}),
	)

	switch {
	case err == nil:
		return found, nil
	case errors.Is(err, errNotPresent),
		errors.Is(err, context.DeadlineExceeded):
		return "", fmt.Errorf("%w: no CAN interface at bus address %s within %s",
			ErrTimeout, busAddress, timeout)
	default:
		return "", err
	}
}

func lookup(q types.Querier, busAddress string) (string, error) {
	names, err := q.Interfaces()
	if err != nil {
		return "", retry.Unrecoverable(fmt.Errorf("failed to list CAN interfaces: %w", err))
	}

	for _, name := range names {
		addr, err := q.BusAddress(name)
		if err != nil {
			return "", retry.Unrecoverable(fmt.Errorf("failed to read bus address of %s: %w", name, err))
		}

		if addr == busAddress {
			return name, nil
		}
	}

	return "", errNotPresent
}

// attempts bounds the retry count so the loop terminates by attempt count
// as well as by deadline.
func attempts(timeout, interval time.Duration) uint {
	if interval <= 0 {
		return 1
	}

	return uint(timeout/interval) + 1
}
