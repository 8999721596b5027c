package models

// MonthlyReport сводка бронирований за месяц
type MonthlyReport struct {
	Month        string          `json:"month"` // YYYY-MM
	From         string          `json:"from"`  // первый день месяца
	To           string          `json:"to"`    // последний день месяца
	Total        int             `json:"total"`
	DepositTotal float64         `json:"depositTotal"`
	ByStatus     StatusCounts    `json:"byStatus"`
	ByService    []ServiceTotals `json:"byService"`
}

// StatusCounts количество бронирований по статусам
type StatusCounts struct {
	Pending   int `json:"pending"`
	Confirmed int `json:"confirmed"`
	Rejected  int `json:"rejected"`
	Cancelled int `json:"cancelled"`
	Unknown   int `json:"unknown"`
}

// ServiceTotals итог по одной услуге
type ServiceTotals struct {
	Service string  `json:"service"`
	Count   int     `json:"count"`
	Deposit float64 `json:"deposit"`
}
