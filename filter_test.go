package blazetopic_test

import (
	"testing"

	"github.com/NSXBet/blazetopic"
	"github.com/stretchr/testify/require"
)

func TestValidateFilter(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		filter string
		want   blazetopic.ValidStatus
	}{
		// Basic valid cases
		{"simple topic", "topic", blazetopic.Valid},
		{"multi-level topic", "user/created", blazetopic.Valid},
		{"+ wildcard", "sport/+/player1", blazetopic.Valid},
		{"+ wildcard at end", "matches/123/+", blazetopic.Valid},
		{"# wildcard at end", "sport/tennis/#", blazetopic.Valid},
		{"single +", "+", blazetopic.Valid},
		{"single #", "#", blazetopic.Valid},
		{"+ then #", "+/tennis/#", blazetopic.Valid},
		{"consecutive +", "+/+/+", blazetopic.Valid},
		{"+ followed by #", "+/#", blazetopic.Valid},

		// Empty levels carry no wildcard characters
		{"empty filter", "", blazetopic.Valid},
		{"leading slash", "/topic", blazetopic.Valid},
		{"trailing slash", "topic/", blazetopic.Valid},
		{"double slash", "topic//subtopic", blazetopic.Valid},
		{"root-level # with leading slash", "/#", blazetopic.Valid},
		{"system prefix", "$SYS/#", blazetopic.Valid},

		// Invalid + usage
		{"+ combined with text", "sport+", blazetopic.Invalid},
		{"text after +", "matches/+scores", blazetopic.Invalid},
		{"double +", "matches/++", blazetopic.Invalid},

		// Invalid # usage
		{"# glued to level", "sport/tennis#", blazetopic.Invalid},
		{"# not last", "sport/tennis/#/ranking", blazetopic.Invalid},
		{"# before word", "matches/#scores", blazetopic.Invalid},
		{"# at start before level", "#/scores", blazetopic.Invalid},
		{"# followed by empty level", "sport/#/", blazetopic.Invalid},
		{"+ and # in one level", "sport/+#", blazetopic.Invalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			require.Equal(t, tt.want, blazetopic.Validate(tt.filter, blazetopic.Filter))
			require.Equal(t, tt.want, blazetopic.ValidateLevels(blazetopic.Tokenize(tt.filter), blazetopic.Filter))
		})
	}
}

func TestValidateName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		topic string
		want  blazetopic.ValidStatus
	}{
		{"simple topic", "topic", blazetopic.Valid},
		{"multi-level topic", "sport/tennis/player1", blazetopic.Valid},
		{"empty topic", "", blazetopic.Valid},
		{"empty levels", "/finance//", blazetopic.Valid},
		{"system topic", "$SYS/monitor/Clients", blazetopic.Valid},
		{"contains +", "sport/+/player1", blazetopic.Invalid},
		{"contains #", "sport/#", blazetopic.Invalid},
		{"wildcard inside level", "sport/ten#nis", blazetopic.Invalid},
		{"lone +", "+", blazetopic.Invalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			require.Equal(t, tt.want, blazetopic.Validate(tt.topic, blazetopic.Name))
			require.Equal(t, tt.want, blazetopic.ValidateLevels(blazetopic.Tokenize(tt.topic), blazetopic.Name))
		})
	}
}

func TestValidateBadParam(t *testing.T) {
	t.Parallel()

	require.Equal(t, blazetopic.BadParam, blazetopic.Validate("sport/+/player1", blazetopic.TopicType(255)))
	require.Equal(t, blazetopic.BadParam, blazetopic.ValidateLevels([]string{"sport"}, blazetopic.TopicType(2)))
	require.ErrorIs(t, blazetopic.BadParam.Err(blazetopic.Filter), blazetopic.ErrBadParam)
}

func TestValidStatusErr(t *testing.T) {
	t.Parallel()

	require.NoError(t, blazetopic.ValidateFilter("sport/#"))
	require.ErrorIs(t, blazetopic.ValidateFilter("sport#"), blazetopic.ErrInvalidFilter)
	require.NoError(t, blazetopic.ValidateName("sport/tennis"))
	require.ErrorIs(t, blazetopic.ValidateName("sport/+"), blazetopic.ErrInvalidTopic)
}

func TestTopicFilterRejectsEmpty(t *testing.T) {
	t.Parallel()

	topicFilter := blazetopic.NewTopicFilter()

	require.ErrorIs(t, topicFilter.Validate(""), blazetopic.ErrInvalidFilter)
	require.ErrorIs(t, topicFilter.ValidateTopic(""), blazetopic.ErrInvalidTopic)
	require.NoError(t, topicFilter.Validate("/"))
	require.NoError(t, topicFilter.ValidateTopic("/"))
	require.ErrorIs(t, topicFilter.Validate("a/#/b"), blazetopic.ErrInvalidFilter)
	require.ErrorIs(t, topicFilter.ValidateTopic("a/+"), blazetopic.ErrInvalidTopic)
}

func TestParseTopicType(t *testing.T) {
	t.Parallel()

	role, err := blazetopic.ParseTopicType("Filter")
	require.NoError(t, err)
	require.Equal(t, blazetopic.Filter, role)

	role, err = blazetopic.ParseTopicType("name")
	require.NoError(t, err)
	require.Equal(t, blazetopic.Name, role)

	for _, s := range []string{"pattern", "topic", ""} {
		_, err = blazetopic.ParseTopicType(s)
		require.ErrorIs(t, err, blazetopic.ErrBadParam, "role %q", s)
	}

	require.Equal(t, "filter", blazetopic.Filter.String())
	require.Equal(t, "TopicType(9)", blazetopic.TopicType(9).String())
}
