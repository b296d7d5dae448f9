package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/blossomdecode/sparseblossom/mwpm"
)

func newDecodeCommand() *cobra.Command {
	var demPath, syndrome string

	cmd := &cobra.Command{
		Use:   "decode",
		Short: "Decode a syndrome against a detector error model",
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

			var excitedNames []string
			if syndrome != "" {
				excitedNames = strings.Split(syndrome, ",")
			}
			excited, err := norm.AdjustExcited(excitedNames)
			if err != nil {
				return errors.Wrap(err, "blossomdecode: resolving syndrome")
			}

			mask, err := mwpm.Decode(g, excited)
			if err != nil {
				return errors.Wrap(err, "blossomdecode: decode")
			}
			mask = norm.FinalMask(mask)

			rc.log.WithField("observable_mask", mask.String()).Info("decode complete")
			fmt.Fprintln(os.Stdout, mask.String())
			return nil
		},
	}
	cmd.Flags().StringVar(&demPath, "dem", "", "path to the detector error model file")
	cmd.Flags().StringVar(&syndrome, "syndrome", "", "comma-separated list of excited detector names")
	return cmd
}
