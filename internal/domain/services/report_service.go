package services

import (
	"hostel-http-service/internal/domain/models"
	"hostel-http-service/internal/infrastructure/config"

	"gorm.io/gorm"
)

// InterfaceReportService produces the property dashboard counts.
type InterfaceReportService interface {
	ResidentReport(propertyID uint) (*ResidentReport, error)
	SecurityReport(propertyID uint) (*SecurityReport, error)
	DashboardStats(propertyID uint) (*DashboardStats, error)
}

// TallyItem is one bucket of a count-by report.
type TallyItem struct {
	Label string `json:"label"`
	Count int64  `json:"count"`
}

// ResidentReport tallies the property's residents.
type ResidentReport struct {
	Total    int64       `json:"totalResidents"`
	ByGender []TallyItem `json:"genderReport"`
	Approval []TallyItem `json:"approvalReport"`
}

// SecurityReport tallies the property's security staff.
type SecurityReport struct {
	Total    int64       `json:"totalStaff"`
	ByGender []TallyItem `json:"genderReport"`
}

// DashboardStats are the headline numbers of the admin dashboard.
type DashboardStats struct {
	TotalResidents int64 `json:"totalResidents"`
	TotalStaff     int64 `json:"totalStaff"`
	PendingVisits  int64 `json:"pendingVisits"`
}

// ReportService implements InterfaceReportService.
type ReportService struct {
	DB     *gorm.DB
	Config *config.Config
}

// NewReportService creates a report service.
func NewReportService(db *gorm.DB, cfg *config.Config) InterfaceReportService {
	return &ReportService{DB: db, Config: cfg}
}

func (s *ReportService) ResidentReport(propertyID uint) (*ResidentReport, error) {
	report := &ResidentReport{}
	scope := s.DB.Model(&models.ResidentProfile{}).Where("property_id = ?", propertyID)
	if err := scope.Session(&gorm.Session{}).Count(&report.Total).Error; err != nil {
		return nil, err
	}

	var err error
	if report.ByGender, err = tally(scope.Session(&gorm.Session{}), "gender"); err != nil {
		return nil, err
	}

	var approved int64
	if err := scope.Session(&gorm.Session{}).Where("approved = ?", true).Count(&approved).Error; err != nil {
		return nil, err
	}
	report.Approval = []TallyItem{
		{Label: "Approved", Count: approved},
		{Label: "Pending", Count: report.Total - approved},
	}
	return report, nil
}

func (s *ReportService) SecurityReport(propertyID uint) (*SecurityReport, error) {
	report := &SecurityReport{}
	scope := s.DB.Model(&models.SecurityStaffProfile{}).Where("property_id = ?", propertyID)
	if err := scope.Session(&gorm.Session{}).Count(&report.Total).Error; err != nil {
		return nil, err
	}
	var err error
	if report.ByGender, err = tally(scope.Session(&gorm.Session{}), "gender"); err != nil {
		return nil, err
	}
	return report, nil
}

func (s *ReportService) DashboardStats(propertyID uint) (*DashboardStats, error) {
	stats := &DashboardStats{}
	if err := s.DB.Model(&models.ResidentProfile{}).Where("property_id = ?", propertyID).
		Count(&stats.TotalResidents).Error; err != nil {
		return nil, err
	}
	if err := s.DB.Model(&models.SecurityStaffProfile{}).Where("property_id = ?", propertyID).
		Count(&stats.TotalStaff).Error; err != nil {
		return nil, err
	}
	if err := s.DB.Model(&models.VisitRequest{}).
		Where("status = ? AND resident_id IN (?)", models.VisitStatusPending, residentsOf(s.DB, propertyID)).
		Count(&stats.PendingVisits).Error; err != nil {
		return nil, err
	}
	return stats, nil
}

// tally counts rows of q grouped by column.
func tally(q *gorm.DB, column string) ([]TallyItem, error) {
	var rows []struct {
		Label string
		Count int64
	}
	if err := q.Select(column + " AS label, COUNT(*) AS count").Group(column).Order(column).Scan(&rows).Error; err != nil {
		return nil, err
	}
	items := make([]TallyItem, 0, len(rows))
	for _, r := range rows {
		items = append(items, TallyItem{Label: r.Label, Count: r.Count})
	}
	return items, nil
}
