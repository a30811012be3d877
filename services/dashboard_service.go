package services

import (
	"time"

	"sabores/entity"
	"sabores/pkg/apperr"
	"sabores/repository"
)

type DailyCount struct {
	Date  string `json:"date"`
	Count int64  `json:"count"`
}

type DashboardStats struct {
	WindowStart   time.Time                    `json:"window_start"`
	WindowEnd     time.Time                    `json:"window_end"`
	TodayOrders   int64                        `json:"today_orders"`
	TodayRevenue  entity.Money                 `json:"today_revenue"`
	PendingOrders int64                        `json:"pending_orders"`
	StatusCounts  map[entity.OrderStatus]int64 `json:"status_counts"`
	DailyOrders   []DailyCount                 `json:"daily_orders"`
}

type DashboardService struct {
	Repo *repository.OrderRepository
	Now  func() time.Time
}

func NewDashboardService(repo *repository.OrderRepository) *DashboardService {
	return &DashboardService{Repo: repo, Now: func() time.Time { return time.Now().UTC() }}
}

// Stats aggregates the window [start_date, end_date] (whole days, UTC); the
// default window is today. The 7-day series always ends yesterday.
func (s *DashboardService) Stats(startDate, endDate string) (*DashboardStats, error) {
	now := s.Now()
	today := startOfDay(now)

	fields := map[string]string{}
	from := today
	if d := parseDay("start_date", startDate, fields); d != nil {
		from = *d
	}
	to := today.AddDate(0, 0, 1)
	if d := parseDay("end_date", endDate, fields); d != nil {
		to = d.AddDate(0, 0, 1)
	}
	if len(fields) == 0 && !to.After(from) {
		fields["end_date"] = "must not be before start_date"
	}
	if len(fields) > 0 {
		return nil, apperr.ValidationFields("invalid request", fields)
	}

	out := &DashboardStats{WindowStart: from, WindowEnd: to}
	var err error
	if out.TodayOrders, err = s.Repo.CountCreatedBetween(from, to); err != nil {
		return nil, err
	}

	totals, err := s.Repo.TotalsCreatedBetween(from, to)
	if err != nil {
		return nil, err
	}
	revenue := entity.ZeroMoney()
	for _, t := range totals {
		revenue = revenue.Add(t)
	}
	out.TodayRevenue = revenue

	if out.PendingOrders, err = s.Repo.CountInStatuses(entity.ActiveOrderStatuses); err != nil {
		return nil, err
	}

	out.StatusCounts = make(map[entity.OrderStatus]int64, len(entity.OrderStatuses))
	for _, st := range entity.OrderStatuses {
		out.StatusCounts[st] = 0
	}
	rows, err := s.Repo.CountByStatus()
	if err != nil {
		return nil, err
	}
	for _, r := range rows {
		out.StatusCounts[r.Status] = r.Count
	}

	out.DailyOrders = make([]DailyCount, 0, 7)
	weekStart := now.AddDate(0, 0, -7)
	for i := 0; i < 7; i++ {
		day := startOfDay(weekStart.AddDate(0, 0, i))
		n, err := s.Repo.CountCreatedBetween(day, day.AddDate(0, 0, 1))
		if err != nil {
			return nil, err
		}
		out.DailyOrders = append(out.DailyOrders, DailyCount{Date: day.Format(dateLayout), Count: n})
	}
	return out, nil
}
