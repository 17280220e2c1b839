package response

type AdminDashboardResponse struct {
	TotalUsers     int64             `json:"total_users"`
	TotalPackages  int64             `json:"total_packages"`
	TotalBookings  int64             `json:"total_bookings"`
	TotalRevenue   float64           `json:"total_revenue"`
	RecentBookings []BookingResponse `json:"recent_bookings"`
}
