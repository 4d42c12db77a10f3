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

	"github.com/spf13/cobra"

	"arhat.dev/canbot/pkg/conf"
	"arhat.dev/canbot/pkg/configure"
	"arhat.dev/canbot/pkg/constant"
)

func newEnsureCmd(appCtx *context.Context, config *conf.CanbotConfig) *cobra.Command {
	var (
		name       string
		bitrate    uint32
		busAddress string
	)

	ensureCmd := &cobra.Command{
		Use:           "ensure",
		Short:         "bring one CAN interface to the desired name, bitrate and up state",
		SilenceErrors: true,
		SilenceUsage:  true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			target := configure.Target{
				Name:    name,
				Bitrate: bitrate,
			}

			return runEnsure(*appCtx, config, busAddress, target)
		},
	}

	flags := ensureCmd.Flags()
	flags.StringVar(&name, "name", constant.DefaultInterfaceName, "desired interface name")
	flags.Uint32Var(&bitrate, "bitrate", constant.DefaultBitrate, "desired bitrate in bits per second")
	flags.StringVar(&busAddress, "busAddress", "",
		"USB bus address of the adapter, required when more than one CAN interface is present")

	return ensureCmd
}

func runEnsure(
	ctx context.Context,
	config *conf.CanbotConfig,
	busAddress string,
	target configure.Target,
) error {
	provider, err := newProvider(ctx, config)
	if err != nil {
		return err
	}
	defer provider.Close()

	return configure.New(provider).Single(busAddress, target)
}
