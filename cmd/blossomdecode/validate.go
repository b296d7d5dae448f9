package main

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func newValidateCommand() *cobra.Command {
	var demPath string

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Build and discretize a detector error model without decoding",
		RunE: func(cmd *cobra.Command, args []string) error {
			rc, err := newRunContext()
			if err != nil {
				return err
			}
			if demPath == "" {
				return errors.New("blossomdecode: --dem is required")
			}

			g, norm, err := buildGraph(rc, demPath)
			if err != nil {
				return err
			}

			rc.log.WithField("nodes", g.NumNodes()).WithField("edges", g.NumEdges()).Info("validated")
			fmt.Fprintf(os.Stdout, "nodes=%d edges=%d scale=%g\n", g.NumNodes(), g.NumEdges(), norm.Scale())
			return nil
		},
	}
	cmd.Flags().StringVar(&demPath, "dem", "", "path to the detector error model file")
	return cmd
}
