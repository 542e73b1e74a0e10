package specification

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromConversationQueryDefaultSort(t *testing.T) {
	specs := FromConversationQuery(nil, nil)
	require.Len(t, specs, 1)

	sort, ok := specs[0].(sortBy)
	require.True(t, ok)
	assert.Equal(t, "conversations.updated_at", sort.column)
	assert.True(t, sort.desc)
}

func TestFromConversationQueryWhitelistedSort(t *testing.T) {
	specs := FromConversationQuery([]SortSpec{
		{Property: "createdAt", Direction: "ASC"},
	}, nil)
	require.Len(t, specs, 1)

	sort, ok := specs[0].(sortBy)
	require.True(t, ok)
	assert.Equal(t, "conversations.created_at", sort.column)
	assert.False(t, sort.desc)
}

func TestFromConversationQueryDropsUnknownProperties(t *testing.T) {
	specs := FromConversationQuery(
		[]SortSpec{
			{Property: "users.password; DROP TABLE users", Direction: "DESC"},
		},
		[]FilterSpec{
			{Property: "secret_column", Rule: "eq", Value: "x"},
		},
	)

	// Both inputs are rejected, the default ordering takes over
	require.Len(t, specs, 1)
	sort, ok := specs[0].(sortBy)
	require.True(t, ok)
	assert.Equal(t, "conversations.updated_at", sort.column)
}

func TestFromConversationQueryFilterRules(t *testing.T) {
	specs := FromConversationQuery(nil, []FilterSpec{
		{Property: "updatedAt", Rule: "NEQ", Value: "2026-01-01"},
	})

	// filter plus default sort
	require.Len(t, specs, 2)
	filter, ok := specs[0].(filterRule)
	require.True(t, ok)
	assert.Equal(t, "conversations.updated_at", filter.column)
	assert.Equal(t, "neq", filter.rule)
}

func TestFromConversationQuerySortDirectionCaseInsensitive(t *testing.T) {
	specs := FromConversationQuery([]SortSpec{
		{Property: "updatedAt", Direction: "desc"},
	}, nil)
	require.Len(t, specs, 1)

	sort, ok := specs[0].(sortBy)
	require.True(t, ok)
	assert.True(t, sort.desc)
}
