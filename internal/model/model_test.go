package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRole_DashboardPath(t *testing.T) {
	tests := []struct {
		role Role
		want string
	}{
		{RoleOwner, "/owner-dashboard.html"},
		{RoleWalker, "/walker-dashboard.html"},
		{Role("admin"), "/walker-dashboard.html"},
	}
	for _, tt := range tests {
		t.Run(string(tt.role), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.role.DashboardPath())
		})
	}
}

func TestWalkerSummary_NullAverage(t *testing.T) {
	raw, err := json.Marshal(WalkerSummary{WalkerUsername: "davidwalker"})
	require.NoError(t, err)

	assert.JSONEq(t, `{"walker_username":"davidwalker","total_ratings":0,"average_rating":null,"completed_walks":0}`, string(raw))
}
