package blazetopic

import "strings"

const (
	// LevelSeparator splits a topic into levels.
	LevelSeparator = '/'
	// SingleLevelWildcard matches exactly one topic level, including an empty one.
	SingleLevelWildcard = "+"
	// MultiLevelWildcard matches the current level and everything beneath it.
	MultiLevelWildcard = "#"
	// SysPrefix marks a system topic when it starts the first level.
	SysPrefix = '$'

	separator = "/"
)

// Tokenize splits a topic into its levels. Empty levels are preserved, so the
// result always holds one more level than the topic has separators:
//
//	"a//b" -> ["a", "", "b"]
//	"/a/"  -> ["", "a", ""]
//	""     -> [""]
//
// The returned levels share memory with topic.
func Tokenize(topic string) []string {
	return AppendLevels(make([]string, 0, strings.Count(topic, separator)+1), topic)
}

// AppendLevels appends the levels of topic to dst and returns the extended slice.
func AppendLevels(dst []string, topic string) []string {
	for {
		idx := strings.IndexByte(topic, LevelSeparator)
		if idx < 0 {
			return append(dst, topic)
		}

		dst = append(dst, topic[:idx])
		topic = topic[idx+1:]
	}
}

// nextLevel scans the first level off topic. When more is false the returned
// level was the last one and rest is meaningless.
func nextLevel(topic string) (level, rest string, more bool) {
	idx := strings.IndexByte(topic, LevelSeparator)
	if idx < 0 {
		return topic, "", false
	}

	return topic[:idx], topic[idx+1:], true
}

// Trim removes surrounding whitespace and any trailing separators.
func Trim(topic string) string {
	return strings.TrimRight(strings.TrimSpace(topic), separator)
}

// IsSystemTopic reports whether the first level of topic begins with '$'.
func IsSystemTopic(topic string) bool {
	return len(topic) > 0 && topic[0] == SysPrefix
}

func isWildcardLevel(level string) bool {
	return level == SingleLevelWildcard || level == MultiLevelWildcard
}

// hasWildcard checks if a subscription pattern contains wildcard characters.
func hasWildcard(pattern string) bool {
	return strings.ContainsAny(pattern, "+#")
}
