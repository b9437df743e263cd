package main

import (
	"fmt"

	"github.com/NSXBet/blazetopic"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newMatchCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "match <filter> <topic>",
		Short: "Match one topic against one filter",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			filter, topic := args[0], args[1]

			if err := blazetopic.ValidateFilter(filter); err != nil {
				return fmt.Errorf("filter %q: %w", filter, err)
			}

			if err := blazetopic.ValidateName(topic); err != nil {
				return fmt.Errorf("topic %q: %w", topic, err)
			}

			status := blazetopic.MatchTopic(filter, topic)
			opts.logger.Debug("matched", zap.String("filter", filter), zap.String("topic", topic), zap.Stringer("status", status))

			fmt.Fprintln(cmd.OutOrStdout(), status)

			return nil
		},
	}
}
