package footballdata

// Wire shapes for the football-data.org v4 competition matches endpoint.

type matchesEnvelope struct {
	Matches []matchItem `json:"matches"`
}

type matchItem struct {
	ID       int64     `json:"id"`
	UTCDate  string    `json:"utcDate"`
	Status   string    `json:"status"`
	Matchday int       `json:"matchday"`
	HomeTeam teamItem  `json:"homeTeam"`
	AwayTeam teamItem  `json:"awayTeam"`
	Score    scoreItem `json:"score"`
}

type teamItem struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	ShortName string `json:"shortName"`
}

type scoreItem struct {
	Winner   string       `json:"winner"`
	FullTime fullTimeItem `json:"fullTime"`
}

type fullTimeItem struct {
	Home *int `json:"home"`
	Away *int `json:"away"`
}
