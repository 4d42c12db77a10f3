/*
Copyright 2021 The arhat.dev Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package cmd

import (
	"context"
	"time"

	"arhat.dev/pkg/log"
	"github.com/spf13/cobra"

	"arhat.dev/canbot/pkg/conf"
	"arhat.dev/canbot/pkg/configure"
	"arhat.dev/canbot/pkg/constant"
	"arhat.dev/canbot/pkg/types"
	"arhat.dev/canbot/pkg/wait"
)

func newWaitCmd(appCtx *context.Context, config *conf.CanbotConfig) *cobra.Command {
	var (
		name     string
		bitrate  uint32
		timeout  time.Duration
		interval time.Duration
	)

	waitCmd := &cobra.Command{
		Use:           "wait <bus-address>",
		Short:         "wait for a CAN interface at a USB bus address, then configure it",
		SilenceErrors: true,
		SilenceUsage:  true,
		Args:          cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			target := configure.Target{
				Name:    name,
				Bitrate: bitrate,
			}

			return runWait(*appCtx, config, args[0], target, timeout, interval)
		},
	}

	flags := waitCmd.Flags()
	flags.StringVar(&name, "name", constant.DefaultInterfaceName, "desired interface name")
	flags.Uint32Var(&bitrate, "bitrate", constant.DefaultBitrate, "desired bitrate in bits per second")
	flags.DurationVar(&timeout, "timeout", constant.DefaultWaitTimeout, "how long to wait for the device")
	flags.DurationVar(&interval, "interval", constant.DefaultPollInterval, "poll interval")

	return waitCmd
}

func runWait(
	ctx context.Context,
	config *conf.CanbotConfig,
	busAddress string,
	target configure.Target,
	timeout, interval time.Duration,
) error {
	provider, err := newProvider(ctx, config)
	if err != nil {
		return err
	}
	defer provider.Close()

	return waitAndConfigure(ctx, provider, busAddress, target, timeout, interval)
}

// waitAndConfigure blocks until the device is present, hands it to the
// configurator exactly once, and returns the configurator's result.
func waitAndConfigure(
	ctx context.Context,
	provider types.Provider,
	busAddress string,
	target configure.Target,
	timeout, interval time.Duration,
) error {
	ifname, err := wait.ForBusAddress(ctx, provider, busAddress, timeout, interval)
	if err != nil {
		return err
	}

	log.Log.I("device present",
		log.String("ifname", ifname),
		log.String("busAddress", busAddress),
	)

	return configure.New(provider).Single(busAddress, target)
}
