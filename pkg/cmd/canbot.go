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

	"arhat.dev/pkg/log"
	"github.com/spf13/cobra"

	"arhat.dev/canbot/pkg/conf"
	"arhat.dev/canbot/pkg/constant"
	"arhat.dev/canbot/pkg/kmod"
	"arhat.dev/canbot/pkg/netdev"
)

func NewCanbotCmd() *cobra.Command {
	var (
		appCtx       context.Context
		configFile   string
		config       = new(conf.CanbotConfig)
		cliLogConfig = new(log.Config)
	)

	canbotCmd := &cobra.Command{
		Use:           "canbot",
		Short:         "configure CAN network interfaces of USB-to-CAN adapters",
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Use == "version" {
				return nil
			}

			var err error
			appCtx, err = conf.ReadConfig(cmd, &configFile, cliLogConfig, config)
			if err != nil {
				return err
			}

			return nil
		},
	}

	flags := canbotCmd.PersistentFlags()
	// config file
	flags.StringVarP(&configFile, "config", "c", constant.DefaultCanbotConfigFile, "path to the canbot config file")
	// log config options
	flags.AddFlagSet(log.FlagsForLogConfig("log.", cliLogConfig))
	// driver module options
	flags.StringVar(
		&config.Canbot.DriverModule,
		"driverModule",
		constant.DefaultDriverModule,
		"kernel module exposing USB adapters as CAN interfaces",
	)
	flags.BoolVar(
		&config.Canbot.SkipDriverLoad,
		"skipDriverLoad",
		false,
		"do not load the driver module (driver built into the kernel)",
	)

	canbotCmd.AddCommand(newWaitCmd(&appCtx, config))
	canbotCmd.AddCommand(newEnsureCmd(&appCtx, config))
	canbotCmd.AddCommand(newEnsureAllCmd(&appCtx, config))
	canbotCmd.AddCommand(newVersionCmd())

	return canbotCmd
}

// newProvider loads the driver module then opens the netlink/ethtool
// backed provider, callers own the Close.
func newProvider(ctx context.Context, config *conf.CanbotConfig) (*netdev.Provider, error) {
	if !config.Canbot.SkipDriverLoad {
		err := kmod.Load(ctx, config.Canbot.DriverModule)
		if err != nil {
			return nil, err
		}
	}

	return netdev.NewProvider()
}
