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
	"fmt"

	"github.com/spf13/cobra"

	"arhat.dev/canbot/pkg/conf"
	"arhat.dev/canbot/pkg/configure"
)

func newEnsureAllCmd(appCtx *context.Context, config *conf.CanbotConfig) *cobra.Command {
	ensureAllCmd := &cobra.Command{
		Use:           "ensure-all",
		Short:         "reconcile all attached CAN interfaces against the configured device table",
		SilenceErrors: true,
		SilenceUsage:  true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEnsureAll(*appCtx, config)
		},
	}

	return ensureAllCmd
}

func runEnsureAll(ctx context.Context, config *conf.CanbotConfig) error {
	targets, expected, err := config.TargetTable()
	if err != nil {
		return fmt.Errorf("invalid device table: %w", err)
	}

	provider, err := newProvider(ctx, config)
	if err != nil {
		return err
	}
	defer provider.Close()

	return configure.New(provider).All(targets, expected)
}
