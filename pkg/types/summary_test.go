package types

import (
	"encoding/json"
	"testing"

	"github.com/matryer/is"
)

func TestSummaryWithNestedStatusCounts(t *testing.T) {
	is := is.New(t)

	var s Summary
	err := json.Unmarshal([]byte(`{"byPriority":{"high":3,"medium":2,"low":1},"byType":{"INACTIVITY":6},"status":{"active":4,"resolved":2}}`), &s)
	is.NoErr(err)

	is.Equal(s.ByPriority.Total(), 6)
	is.Equal(s.ByType["INACTIVITY"], 6)
	is.Equal(*s.Status, StatusCounts{Active: 4, Resolved: 2})
}

func TestSummaryWithTopLevelStatusCounts(t *testing.T) {
	is := is.New(t)

	var s Summary
	err := json.Unmarshal([]byte(`{"byPriority":{"high":1},"active":1,"dismissed":5}`), &s)
	is.NoErr(err)

	is.True(s.Status != nil)
	is.Equal(*s.Status, StatusCounts{Active: 1, Dismissed: 5})
}

func TestSummaryWithoutStatusCounts(t *testing.T) {
	is := is.New(t)

	var s Summary
	is.NoErr(json.Unmarshal([]byte(`{"byPriority":{"low":2}}`), &s))
	is.True(s.Status == nil)
	is.Equal(s.ByPriority.Total(), 2)
}

func TestCountStatuses(t *testing.T) {
	is := is.New(t)

	c := CountStatuses([]Alert{{}, {Status: StatusAcknowledged}, {Status: StatusResolved}, {Status: StatusActive}})
	is.Equal(c, StatusCounts{Active: 2, Acknowledged: 1, Resolved: 1})
}
