package study

type DailyStat struct {
	Date          string `json:"date"`
	CardsReviewed int    `json:"cardsReviewed"`
}

type Statistics struct {
	TotalCards      int64       `json:"total_cards"`
	CardsLearned    int64       `json:"cards_learned"`
	AverageAccuracy float64     `json:"average_accuracy"`
	DailyStats      []DailyStat `json:"daily_stats"`
}
