package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/NSXBet/blazetopic"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// filterFile is the YAML layout read by the find command:
//
//	filters:
//	  - filter: sport/#
//	    value: all-sport
type filterFile struct {
	Filters []filterEntry `yaml:"filters"`
}

type filterEntry struct {
	Filter string `yaml:"filter"`
	Value  string `yaml:"value"`
}

func loadFilters(path string) ([]filterEntry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading filter file: %w", err)
	}

	var file filterFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing filter file %s: %w", path, err)
	}

	return file.Filters, nil
}

// buildAutomaton validates every entry and compiles them in file order.
func buildAutomaton(entries []filterEntry) (*blazetopic.Automaton[string], error) {
	store := blazetopic.NewStore[string]()

	for i, entry := range entries {
		if err := blazetopic.ValidateFilter(entry.Filter); err != nil {
			return nil, fmt.Errorf("entry %d filter %q: %w", i, entry.Filter, err)
		}

		if err := store.Add(entry.Filter, entry.Value); err != nil {
			return nil, fmt.Errorf("adding entry %d: %w", i, err)
		}
	}

	return store.Compile()
}

func newFindCmd(opts *rootOptions) *cobra.Command {
	var (
		filtersPath string
		list        bool
	)

	cmd := &cobra.Command{
		Use:   "find --filters <file> <topic>...",
		Short: "Find the values whose filters match each topic",
		Long: `Find the values whose filters match each topic.

The filter file is YAML:

  filters:
    - filter: sport/#
      value: all-sport
    - filter: sport/+/player1
      value: player1

Example:
  topicmatch find --filters filters.yaml sport/tennis/player1`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if filtersPath == "" {
				return fmt.Errorf("filter file is required, use --filters")
			}

			entries, err := loadFilters(filtersPath)
			if err != nil {
				return err
			}

			automaton, err := buildAutomaton(entries)
			if err != nil {
				return err
			}

			opts.logger.Debug("compiled filters",
				zap.Int("values", automaton.Len()),
				zap.Int("nodes", automaton.NodeCount()),
			)

			out := cmd.OutOrStdout()

			if list {
				automaton.Walk(func(filter string, value *string) bool {
					fmt.Fprintf(out, "%s\t%s\n", filter, *value)

					return true
				})
			}

			query := automaton.NewQuery()

			for _, topic := range args {
				if err := blazetopic.ValidateName(topic); err != nil {
					return fmt.Errorf("topic %q: %w", topic, err)
				}

				found := query.Find(topic)

				matched := make([]string, 0, len(found))
				for _, value := range found {
					matched = append(matched, *value)
				}

				fmt.Fprintf(out, "%s\t%s\n", topic, strings.Join(matched, ","))
			}

			return nil
		},
	}

	cmd.Flags().StringVarP(&filtersPath, "filters", "f", "", "YAML file with filter/value entries")
	cmd.Flags().BoolVar(&list, "list", false, "print the compiled filters before matching")

	return cmd
}
