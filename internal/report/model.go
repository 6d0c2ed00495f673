package report

type ActiveCount struct {
	AsOf  string `json:"as_of"`
	Count int    `json:"count"`
}

type MonthRevenue struct {
	Month int   `db:"month" json:"month"`
	Total int64 `db:"total" json:"total"`
}

type YearRevenue struct {
	Year   int            `json:"year"`
	Months []MonthRevenue `json:"months"`
	Total  int64          `json:"total"`
}

type PlanCount struct {
	PlanID   int    `db:"plan_id" json:"plan_id"`
	PlanName string `db:"plan_name" json:"plan_name"`
	Count    int    `db:"count" json:"count"`
}
