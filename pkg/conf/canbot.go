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

package conf

import (
	"context"
	"fmt"
	"io/ioutil"
	"os"
	"os/signal"
	"syscall"

	"arhat.dev/pkg/log"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"arhat.dev/canbot/pkg/constant"
)

type CanbotConfig struct {
	Canbot AppConfig `json:"canbot" yaml:"canbot"`

	// ExpectedDevices pins the device count multi-device mode checks
	// against, defaults to the size of the devices table.
	ExpectedDevices int `json:"expectedDevices" yaml:"expectedDevices"`

	// Devices maps each expected USB bus address to its desired
	// interface name and bitrate.
	Devices []DeviceConfig `json:"devices" yaml:"devices"`
}

type AppConfig struct {
	Log log.ConfigSet `json:"log" yaml:"log"`

	// DriverModule is the kernel module exposing USB adapters as CAN
	// network interfaces.
	DriverModule string `json:"driverModule" yaml:"driverModule"`

	// SkipDriverLoad disables module loading for hosts with the driver
	// built into the kernel.
	SkipDriverLoad bool `json:"skipDriverLoad" yaml:"skipDriverLoad"`
}

func ReadConfig(
	cmd *cobra.Command,
	configFile *string,
	cliLogConfig *log.Config,
	config *CanbotConfig,
) (context.Context, error) {
	flags := cmd.Flags()

	configBytes, err := ioutil.ReadFile(*configFile)
	switch {
	case err == nil:
		// flags were parsed into config before this runs, keep values of
		// explicitly set flags over file values
		fromFlags := config.Canbot

		err = yaml.Unmarshal(configBytes, config)
		if err != nil {
			return nil, fmt.Errorf("failed to unmarshal config file %s: %w", *configFile, err)
		}

		if flags.Changed("driverModule") {
			config.Canbot.DriverModule = fromFlags.DriverModule
		}

		if flags.Changed("skipDriverLoad") {
			config.Canbot.SkipDriverLoad = fromFlags.SkipDriverLoad
		}
	case os.IsNotExist(err) && !flags.Changed("config"):
		// default config file absent, run from flags alone
	default:
		return nil, fmt.Errorf("failed to read config file %s: %w", *configFile, err)
	}

	config.Canbot.Log = append(config.Canbot.Log, *cliLogConfig)
	err = log.SetDefaultLogger(config.Canbot.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to set default logger: %w", err)
	}

	if config.Canbot.DriverModule == "" {
		config.Canbot.DriverModule = constant.DefaultDriverModule
	}

	appCtx, cancel := context.WithCancel(context.Background())
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	return appCtx, nil
}
