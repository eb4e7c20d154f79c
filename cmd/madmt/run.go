// Licensed to LinDB under one or more contributor
// license agreements. See the NOTICE file distributed with
// this work for additional information regarding copyright
// ownership. LinDB licenses this file to you under
// the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing,
// software distributed under the License is distributed on an
// "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
// KIND, either express or implied.  See the License for the
// specific language governing permissions and limitations
// under the License.

package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/cspotcode/MadMultithreading/config"
	"github.com/cspotcode/MadMultithreading/pkg/logger"
	"github.com/cspotcode/MadMultithreading/workerpool"
)

type runFlags struct {
	transform  string
	inputFile  string
	configFile string
	poolConfig string
	threads    int
	noSort     bool
	noWait     bool
}

func newRunCmd() *cobra.Command {
	f := &runFlags{}
	cmd := &cobra.Command{
		Use:   "run",
		Short: "apply a named transform to a stream of lines through a worker pool",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMain(cmd, f)
		},
	}
	cmd.Flags().StringVar(&f.transform, "transform", "identity", "transform to apply: identity, upper, reverse, sleep, fail-on-empty")
	cmd.Flags().StringVar(&f.inputFile, "file", "", "input file (default: stdin)")
	cmd.Flags().StringVar(&f.configFile, "config", "", "YAML file naming the transform and its args, overriding --transform")
	cmd.Flags().StringVar(&f.poolConfig, "pool-config", "", "TOML file configuring the pool (threads, queue-warn-depth)")
	cmd.Flags().IntVar(&f.threads, "threads", 0, "max worker count, overrides --pool-config and its THREADS env var")
	cmd.Flags().BoolVar(&f.noSort, "no-sort", false, "emit results in completion order instead of input order")
	cmd.Flags().BoolVar(&f.noWait, "no-wait", false, "fire-and-forget: submit every line but never read back results")
	return cmd
}

func runMain(cmd *cobra.Command, f *runFlags) error {
	log := logger.GetLogger("cmd", "madmt")

	transformName := f.transform
	var jobArgs map[string]any
	if f.configFile != "" {
		jc, err := loadJobConfig(f.configFile)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		transformName = jc.Transform
		jobArgs = jc.Args
	}
	fn, err := lookupTransform(transformName)
	if err != nil {
		return err
	}

	poolCfg, err := config.LoadPoolConfig(f.poolConfig)
	if err != nil {
		return fmt.Errorf("load pool config: %w", err)
	}
	if f.threads > 0 {
		poolCfg.Threads = f.threads
	}

	in := cmd.InOrStdin()
	if f.inputFile != "" {
		file, err := os.Open(f.inputFile)
		if err != nil {
			return fmt.Errorf("open input: %w", err)
		}
		defer file.Close()
		in = file
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool := workerpool.NewPool(poolCfg.Threads,
		workerpool.WithPoolName("madmt"),
		workerpool.WithPoolQueueWarnDepth(poolCfg.QueueWarnDepth))
	defer pool.Close()

	inputs := make(chan string)
	go func() {
		defer close(inputs)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case inputs <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
	}()

	var opts []workerpool.RunOption
	if jobArgs != nil {
		opts = append(opts, workerpool.WithArgs(jobArgs))
	}
	if f.noSort {
		opts = append(opts, workerpool.NoSort())
	}
	if f.noWait {
		opts = append(opts, workerpool.NoWait())
	}

	values, errs, err := workerpool.Run[string, string](ctx, pool, transformName, fn, inputs, opts...)
	if err != nil {
		return fmt.Errorf("start run: %w", err)
	}

	out := cmd.OutOrStdout()
	errOut := cmd.ErrOrStderr()
	return drainOutput(log, out, errOut, values, errs)
}

func drainOutput(
	log logger.Logger,
	out, errOut io.Writer,
	values <-chan workerpool.Result[string],
	errs <-chan *workerpool.IndexedError,
) error {
	for values != nil || errs != nil {
		select {
		case v, ok := <-values:
			if !ok {
				values = nil
				continue
			}
			fmt.Fprintln(out, *v.Value)
		case e, ok := <-errs:
			if !ok {
				errs = nil
				continue
			}
			log.Warn("item failed", logger.Int64("index", int64(e.Index)), logger.Error(e.Err))
			fmt.Fprintln(errOut, e.Error())
		}
	}
	return nil
}
