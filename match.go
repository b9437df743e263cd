package blazetopic

// MatchStatus is the outcome of the direct matcher.
type MatchStatus uint8

const (
	Fail MatchStatus = iota
	Match
)

func (s MatchStatus) String() string {
	if s == Match {
		return "match"
	}

	return "fail"
}

// Matched reports whether s is Match.
func (s MatchStatus) Matched() bool {
	return s == Match
}

// MatchTopic checks whether topic matches filter without building a trie. It
// walks both strings level by level and never allocates.
//
//   - "#" matches the current level and everything beneath it, including no
//     level at all ("sport/#" matches "sport").
//   - "+" consumes exactly one level, which may be empty ("sport/+" matches
//     "sport/" but not "sport").
//   - A trailing "+" also absorbs one extra empty level, so "/+" matches
//     "/finance/".
//   - Any other level must be byte-equal to the topic level.
//   - A filter starting with a wildcard never matches a system topic.
//
// Callers are expected to have validated filter as a Filter and topic as a
// Name; other inputs are processed but the result is not meaningful.
func MatchTopic(filter, topic string) MatchStatus {
	if IsSystemTopic(topic) {
		if first, _, _ := nextLevel(filter); isWildcardLevel(first) {
			return Fail
		}
	}

	topicDone := false

	for {
		filterLevel, filterRest, filterMore := nextLevel(filter)
		if filterLevel == MultiLevelWildcard {
			return Match
		}

		if topicDone {
			return Fail
		}

		topicLevel, topicRest, topicMore := nextLevel(topic)
		if filterLevel != SingleLevelWildcard && filterLevel != topicLevel {
			return Fail
		}

		if !filterMore {
			if !topicMore || trailingEmpty(filterLevel, topicRest) {
				return Match
			}

			return Fail
		}

		topicDone = !topicMore
		filter, topic = filterRest, topicRest
	}
}

// MatchLevels is MatchTopic over pre-tokenized levels.
func MatchLevels(filter, topic []string) MatchStatus {
	if len(filter) > 0 && len(topic) > 0 && isWildcardLevel(filter[0]) && IsSystemTopic(topic[0]) {
		return Fail
	}

	for i, filterLevel := range filter {
		if filterLevel == MultiLevelWildcard {
			return Match
		}

		if i >= len(topic) {
			return Fail
		}

		if filterLevel != SingleLevelWildcard && filterLevel != topic[i] {
			return Fail
		}
	}

	switch {
	case len(filter) == len(topic):
		return Match
	case len(filter) > 0 && len(topic) == len(filter)+1 && trailingEmpty(filter[len(filter)-1], topic[len(filter)]):
		return Match
	default:
		return Fail
	}
}

// trailingEmpty reports whether a filter ending in lastLevel still matches
// when the topic has exactly one more level left and that level is empty.
func trailingEmpty(lastLevel, remaining string) bool {
	return lastLevel == SingleLevelWildcard && remaining == ""
}
