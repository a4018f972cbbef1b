package dto

import "github.com/shopspring/decimal"

// DashboardSummary respuesta de GET /api/dashboard/summary.
type DashboardSummary struct {
	ProductCount      int               `json:"productCount"`
	ClientCount       int               `json:"clientCount"`
	OrderCount        int               `json:"orderCount"`
	TotalUnits        int               `json:"totalUnits"`
	InventoryValue    decimal.Decimal   `json:"inventoryValue"`  // Σ cantidad × costo
	PotentialIncome   decimal.Decimal   `json:"potentialIncome"` // Σ cantidad × precio
	PendingOrders     int               `json:"pendingOrders"`
	CompletedSales    decimal.Decimal   `json:"completedSales"` // Σ total de órdenes completadas
	LowStockThreshold int               `json:"lowStockThreshold"`
	StatusCounts      map[string]int    `json:"statusCounts"`
	RecentOrders      []OrderResponse   `json:"recentOrders"`
	LowStock          []ProductResponse `json:"lowStock"`
	TopProducts       []ProductResponse `json:"topProducts"`
	Timeline          []TimelinePoint   `json:"timeline"`
}
