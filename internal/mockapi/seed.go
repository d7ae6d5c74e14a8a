package mockapi

import (
	"time"

	"evrental-staff-core/internal/domain"

	"golang.org/x/crypto/bcrypt"
)

// SeedPassword is the password of every seeded staff account.
const SeedPassword = "Staff@123"

var defaultPricing = Pricing{
	PerDay:     400_000,
	PerWeek:    2_400_000,
	PerMonth:   8_000_000,
	PerKwh:     3_500,
	DepositVND: 1_000_000,
}

var spareVehicles = []domain.Vehicle{
	{VehicleID: "veh-vf8-01", LicensePlate: "51K-678.90", Model: "VinFast VF 8"},
	{VehicleID: "veh-vf5-02", LicensePlate: "51K-222.33", Model: "VinFast VF 5"},
	{VehicleID: "veh-vf6-03", LicensePlate: "51K-444.55", Model: "VinFast VF 6"},
}

// seed fills the store with two staff accounts and three active bookings
// that started two days before now.
func (s *Server) seed(cost int) error {
	accounts := []domain.User{
		{ID: "staff-1", Username: "staff01", Email: "staff01@evrental.vn", FullName: "Trần Thị Bình", Role: domain.UserRoleStaff, BranchID: "HCM-Q1", IsVerified: true},
		{ID: "staff-2", Username: "staff02", Email: "staff02@evrental.vn", FullName: "Lê Văn Cường", Role: domain.UserRoleStaff, BranchID: "HCM-Q7"},
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(SeedPassword), cost)
	if err != nil {
		return err
	}
	for _, u := range accounts {
		acc := &staffAccount{user: u, passwordHash: hash}
		if !u.IsVerified {
			acc.otp = "123456"
		}
		s.accounts[u.Username] = acc
	}

	now := s.now()
	start := now.AddDate(0, 0, -2)
	bookings := []*booking{
		{
			ID: "BK001", RenterID: "renter-1", RenterName: "Nguyễn Văn An", RenterEmail: "an.nguyen@example.com",
			Vehicle:       domain.Vehicle{VehicleID: "veh-vfe34-01", LicensePlate: "51K-123.45", Model: "VinFast VF e34"},
			StartOdometer: 12000, StartBattery: 90,
		},
		{
			ID: "BK002", RenterID: "renter-2", RenterName: "Phạm Minh Châu", RenterEmail: "chau.pham@example.com",
			Vehicle:       domain.Vehicle{VehicleID: "veh-vf3-02", LicensePlate: "51K-987.65", Model: "VinFast VF 3"},
			StartOdometer: 3400, StartBattery: 100,
		},
		{
			ID: "BK003", RenterID: "renter-3", RenterName: "Hoàng Đức Dũng", RenterEmail: "dung.hoang@example.com",
			Vehicle:       domain.Vehicle{VehicleID: "veh-vf5-03", LicensePlate: "51K-555.66", Model: "VinFast VF 5"},
			StartOdometer: 800, StartBattery: 85,
		},
	}
	for _, b := range bookings {
		b.StartAt = start
		b.EndAt = now.Add(2 * time.Hour)
		b.Pricing = defaultPricing
		b.Status = bookingActive
		s.bookings[b.ID] = b
	}
	return nil
}
