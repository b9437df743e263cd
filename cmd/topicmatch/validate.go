package main

import (
	"fmt"

	"github.com/NSXBet/blazetopic"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newValidateCmd(opts *rootOptions) *cobra.Command {
	var role string

	cmd := &cobra.Command{
		Use:   "validate <topic>...",
		Short: "Check topics against the wildcard placement rules",
		Long: `Check topics against the wildcard placement rules.

A topic name may not contain '+' or '#'. A topic filter may use '+' as a
whole level anywhere and '#' as a whole level at the end only.

Example:
  topicmatch validate --role filter "sport/+/player1" "sport/tennis#"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			topicType, err := blazetopic.ParseTopicType(role)
			if err != nil {
				return err
			}

			invalid := 0

			for _, topic := range args {
				status := blazetopic.Validate(topic, topicType)
				opts.logger.Debug("validated topic", zap.String("topic", topic), zap.Stringer("status", status))

				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", status, topic)

				if status != blazetopic.Valid {
					invalid++
				}
			}

			if invalid > 0 {
				return fmt.Errorf("%d of %d topics are not valid %ss", invalid, len(args), topicType)
			}

			return nil
		},
	}

	cmd.Flags().StringVarP(&role, "role", "r", "filter", "topic role: name or filter")

	return cmd
}
