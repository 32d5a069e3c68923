package dto

import "github.com/yukikurage/supertask-api/internal/services"

// DashboardStatsDTO is the response of GET /api/dashboard/stats
type DashboardStatsDTO struct {
	Completed       int                         `json:"completed"`
	InProgress      int                         `json:"in_progress"`
	Overdue         int                         `json:"overdue"`
	HighPriority    int                         `json:"high_priority"`
	DueToday        int                         `json:"due_today"`
	TotalTasks      int                         `json:"total_tasks"`
	CategoriesStats map[string]CategoryStatsDTO `json:"categories_stats"`
}

// CategoryStatsDTO holds the counters of one category. Pending is the number
// of tasks that are not completed, whatever their status.
type CategoryStatsDTO struct {
	Total     int `json:"total"`
	Completed int `json:"completed"`
	Pending   int `json:"pending"`
}

// QuoteDTO is the response of GET /api/dashboard/quote
type QuoteDTO struct {
	Quote  string `json:"quote"`
	Author string `json:"author"`
	Source string `json:"source"`
}

// ToDashboardStatsDTO converts dashboard statistics
func ToDashboardStatsDTO(stats services.DashboardStats) DashboardStatsDTO {
	categories := make(map[string]CategoryStatsDTO, len(stats.CategoriesStats))
	for name, c := range stats.CategoriesStats {
		categories[name] = CategoryStatsDTO{
			Total:     c.Total,
			Completed: c.Completed,
			Pending:   c.Pending,
		}
	}

	return DashboardStatsDTO{
		Completed:       stats.Completed,
		InProgress:      stats.InProgress,
		Overdue:         stats.Overdue,
		HighPriority:    stats.HighPriority,
		DueToday:        stats.DueToday,
		TotalTasks:      stats.TotalTasks,
		CategoriesStats: categories,
	}
}

// ToQuoteDTO converts a quote
func ToQuoteDTO(quote services.Quote) QuoteDTO {
	return QuoteDTO{
		Quote:  quote.Quote,
		Author: quote.Author,
		Source: quote.Source,
	}
}
