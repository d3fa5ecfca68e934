package core

import (
	"sort"

	"github.com/gigaton-io/gigaton/schema"
)

// RankNetZero sorts net-zero results by crossing year in ascending order,
// earliest first. Scenarios that never cross sort after every finite year.
// Ties break on (model, scenario) so the ordering is deterministic.
func RankNetZero(results []schema.NetZeroResult) []schema.NetZeroResult {
	sort.Slice(results, func(i, j int) bool {
		if results[i].Year != results[j].Year {
			return results[i].Year < results[j].Year
		}
		return results[i].Key().Less(results[j].Key())
	})
	return results
}

// LimitRows returns the top 'limit' rows. If limit is greater than the
// number of rows, all rows are returned.
func LimitRows[T any](rows []T, limit int) []T {
	if len(rows) > limit {
		return rows[:limit]
	}
	return rows
}
