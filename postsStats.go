package main

type postsPerDay struct {
	Day   string `json:"day"`
	Posts int    `json:"posts"`
}

type postsStats struct {
	StatusCounts map[postStatus]int `json:"statusCounts"`
	PerDay       []postsPerDay      `json:"perDay"`
}

const postsStatsSql = `
select status, substr(scheduled_at, 1, 10) as day, count(*)
from posts
group by status, day
order by day asc;
`

// getPostsStats derives the reporting view: posts per status and posts
// per calendar day of their scheduled time.
func (db *database) getPostsStats() (*postsStats, error) {
	rows, err := db.query(postsStatsSql)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	stats := &postsStats{
		StatusCounts: map[postStatus]int{},
		PerDay:       []postsPerDay{},
	}
	perDay := map[string]int{}
	days := []string{}
	for rows.Next() {
		var status postStatus
		var day string
		var count int
		if err = rows.Scan(&status, &day, &count); err != nil {
			return nil, err
		}
		stats.StatusCounts[status] += count
		if _, ok := perDay[day]; !ok {
			days = append(days, day)
		}
		perDay[day] += count
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	for _, day := range days {
		stats.PerDay = append(stats.PerDay, postsPerDay{Day: day, Posts: perDay[day]})
	}
	return stats, nil
}
