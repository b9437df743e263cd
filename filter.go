package blazetopic

import (
	"fmt"
	"strings"
)

// TopicType declares the role a topic plays when it is validated.
type TopicType uint8

const (
	// Name is a concrete topic used when publishing. Wildcards are not allowed.
	Name TopicType = iota
	// Filter is a subscription pattern that may contain wildcards.
	Filter
)

func (t TopicType) String() string {
	switch t {
	case Name:
		return "name"
	case Filter:
		return "filter"
	default:
		return fmt.Sprintf("TopicType(%d)", uint8(t))
	}
}

// ParseTopicType maps "name" and "filter" (case insensitive) to a TopicType.
// Any other string wraps ErrBadParam.
func ParseTopicType(s string) (TopicType, error) {
	switch strings.ToLower(s) {
	case "name":
		return Name, nil
	case "filter":
		return Filter, nil
	default:
		return 0, fmt.Errorf("parsing topic type %q: %w", s, ErrBadParam)
	}
}

// ValidStatus is the outcome of validating a topic for a role.
type ValidStatus uint8

const (
	Valid ValidStatus = iota
	Invalid
	BadParam
)

func (s ValidStatus) String() string {
	switch s {
	case Valid:
		return "valid"
	case Invalid:
		return "invalid"
	case BadParam:
		return "bad param"
	default:
		return fmt.Sprintf("ValidStatus(%d)", uint8(s))
	}
}

// Err converts the status into a sentinel error for the given role. Valid
// converts to nil.
func (s ValidStatus) Err(role TopicType) error {
	switch s {
	case Valid:
		return nil
	case BadParam:
		return ErrBadParam
	default:
		if role == Filter {
			return ErrInvalidFilter
		}

		return ErrInvalidTopic
	}
}

// Validate classifies topic for the given role.
//
// A level containing '+' is only valid when the whole level is "+" and the
// role is Filter. A level containing '#' is only valid when the whole level is
// "#", the role is Filter and it is the last level. Any unknown role yields
// BadParam before the topic is looked at.
func Validate(topic string, role TopicType) ValidStatus {
	if role != Name && role != Filter {
		return BadParam
	}

	for {
		level, rest, more := nextLevel(topic)
		if status := validateLevel(level, role, more); status != Valid {
			return status
		}

		if !more {
			return Valid
		}

		topic = rest
	}
}

// ValidateLevels is Validate over a pre-tokenized topic.
func ValidateLevels(levels []string, role TopicType) ValidStatus {
	if role != Name && role != Filter {
		return BadParam
	}

	for i, level := range levels {
		if status := validateLevel(level, role, i < len(levels)-1); status != Valid {
			return status
		}
	}

	return Valid
}

func validateLevel(level string, role TopicType, more bool) ValidStatus {
	// mqtt-v5.0 4.7.1: wildcards MUST NOT be used within a topic name.
	if strings.IndexByte(level, '+') >= 0 && (role == Name || level != SingleLevelWildcard) {
		return Invalid
	}

	if strings.IndexByte(level, '#') >= 0 && (role == Name || level != MultiLevelWildcard || more) {
		return Invalid
	}

	return Valid
}

// ValidateFilter returns ErrInvalidFilter when filter is not a valid topic filter.
func ValidateFilter(filter string) error {
	return Validate(filter, Filter).Err(Filter)
}

// ValidateName returns ErrInvalidTopic when topic is not a valid topic name.
func ValidateName(topic string) error {
	return Validate(topic, Name).Err(Name)
}

// TopicFilter validates filters and topic names before they reach a Router.
type TopicFilter interface {
	Validate(filter string) error
	ValidateTopic(topic string) error
}

type topicFilter struct{}

// NewTopicFilter returns the TopicFilter used by Router. Empty filters and
// topic names are rejected ([MQTT-4.7.3-1]); use Validate directly for the
// level-only rules.
func NewTopicFilter() TopicFilter {
	return &topicFilter{}
}

func (f *topicFilter) Validate(filter string) error {
	if filter == "" {
		return ErrInvalidFilter
	}

	return ValidateFilter(filter)
}

// ValidateTopic validates a topic string (no wildcards allowed).
func (f *topicFilter) ValidateTopic(topic string) error {
	if topic == "" {
		return ErrInvalidTopic
	}

	return ValidateName(topic)
}
