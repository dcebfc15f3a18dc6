package handlers_test

import (
	"context"
	"database/sql"

	"esgreport/db"
	"esgreport/models"
)

// MockStorage implements handlers.StorageInterface. Tests override the Func
// fields they care about; everything else returns canned data.
type MockStorage struct {
	CreateEmissionFactorFunc func(ctx context.Context, f *models.EmissionFactor) error
	GetEmissionFactorFunc    func(ctx context.Context, id int) (*models.EmissionFactor, error)
	GetEmissionFactorsFunc   func(ctx context.Context, f db.FactorFilter) ([]models.EmissionFactor, int, error)
	ActiveFactorValueFunc    func(ctx context.Context, factorID int) (float64, error)
	DeleteFactorRevFunc      func(ctx context.Context, factorID, revisionID int) error

	CreateMeasurementFunc func(ctx context.Context, m *models.Measurement) error
	GetMeasurementFunc    func(ctx context.Context, id int) (*models.Measurement, error)
	GetMeasurementsFunc   func(ctx context.Context, f db.MeasurementFilter) ([]models.Measurement, int, error)

	CreateSupplierFunc     func(ctx context.Context, sup *models.Supplier) error
	GetSupplierFunc        func(ctx context.Context, id int) (*models.Supplier, error)
	GetSuppliersFunc       func(ctx context.Context, f db.SupplierFilter) ([]models.Supplier, int, error)
	CreateSupplierDataFunc func(ctx context.Context, d *models.SupplierData) (float64, error)
	SupplierSummaryFunc    func(ctx context.Context) (*db.SupplierSummary, error)

	CreateTargetFunc  func(ctx context.Context, t *models.ESGTarget) error
	GetTargetFunc     func(ctx context.Context, id int) (*models.ESGTarget, error)
	GetTargetsFunc    func(ctx context.Context, f db.TargetFilter) ([]models.ESGTarget, error)
	ActiveTargetsFunc func(ctx context.Context) ([]models.ESGTarget, error)

	ScopeEmissionsFunc    func(ctx context.Context, scope int, start, end string) (float64, error)
	EmissionsInWindowFunc func(ctx context.Context, start, end string, scope *int) (float64, error)

	GetUserByUsernameFunc func(ctx context.Context, username string) (*models.User, error)
	GetUserFunc           func(ctx context.Context, id int) (*models.User, error)
	UserExistsFunc        func(ctx context.Context, username, email string, excludeID int) (bool, error)

	GetProjectFunc func(ctx context.Context, id int) (*models.Project, error)
}

func (m *MockStorage) CreateEmissionFactor(ctx context.Context, f *models.EmissionFactor) error {
	if m.CreateEmissionFactorFunc != nil {
		return m.CreateEmissionFactorFunc(ctx, f)
	}
	f.ID = 1
	return nil
}

func (m *MockStorage) GetEmissionFactor(ctx context.Context, id int) (*models.EmissionFactor, error) {
	if m.GetEmissionFactorFunc != nil {
		return m.GetEmissionFactorFunc(ctx, id)
	}
	return &models.EmissionFactor{
		ID: id, Name: "Grid Electricity", Scope: 2, Category: "Electricity",
		FactorValue: 0.5, Unit: "kgCO2e/kWh", Source: "DEFRA",
		EffectiveDate: "2025-01-01",
	}, nil
}

func (m *MockStorage) UpdateEmissionFactor(ctx context.Context, f *models.EmissionFactor) error {
	return nil
}
func (m *MockStorage) DeleteEmissionFactor(ctx context.Context, id int) error { return nil }

func (m *MockStorage) GetEmissionFactors(ctx context.Context, f db.FactorFilter) ([]models.EmissionFactor, int, error) {
	if m.GetEmissionFactorsFunc != nil {
		return m.GetEmissionFactorsFunc(ctx, f)
	}
	return []models.EmissionFactor{{ID: 1, Name: "Grid Electricity", Scope: 2}}, 1, nil
}

func (m *MockStorage) FactorCategories(ctx context.Context) ([]string, error) {
	return []string{"Electricity", "Fuel"}, nil
}

func (m *MockStorage) FactorSubCategories(ctx context.Context, category string) ([]string, error) {
	return []string{"Grid"}, nil
}

func (m *MockStorage) GetFactorRevisions(ctx context.Context, factorID int) ([]models.EmissionFactorRevision, error) {
	return []models.EmissionFactorRevision{{ID: 1, ParentFactorID: factorID, Version: 1}}, nil
}

func (m *MockStorage) GetFactorRevision(ctx context.Context, id int) (*models.EmissionFactorRevision, error) {
	return &models.EmissionFactorRevision{ID: id, ParentFactorID: 1, Version: 1, FactorValue: 0.45}, nil
}

func (m *MockStorage) CreateFactorRevision(ctx context.Context, rev *models.EmissionFactorRevision) error {
	rev.ID = 2
	rev.Version = 2
	return nil
}

func (m *MockStorage) ActivateFactorRevision(ctx context.Context, factorID, revisionID int) error {
	return nil
}

func (m *MockStorage) DeleteFactorRevision(ctx context.Context, factorID, revisionID int) error {
	if m.DeleteFactorRevFunc != nil {
		return m.DeleteFactorRevFunc(ctx, factorID, revisionID)
	}
	return nil
}

func (m *MockStorage) ActiveFactorValue(ctx context.Context, factorID int) (float64, error) {
	if m.ActiveFactorValueFunc != nil {
		return m.ActiveFactorValueFunc(ctx, factorID)
	}
	return 0.5, nil
}

func (m *MockStorage) FactorInfo(ctx context.Context, factorID int) (*models.FactorInfo, error) {
	return &models.FactorInfo{ID: factorID, Name: "Grid Electricity", FactorValue: 0.5}, nil
}

func (m *MockStorage) CreateMeasurement(ctx context.Context, mm *models.Measurement) error {
	if m.CreateMeasurementFunc != nil {
		return m.CreateMeasurementFunc(ctx, mm)
	}
	mm.ID = 1
	if mm.EmissionFactorID != nil {
		emissions := mm.Amount * 0.5
		mm.CalculatedEmissions = &emissions
	}
	return nil
}

func (m *MockStorage) GetMeasurement(ctx context.Context, id int) (*models.Measurement, error) {
	if m.GetMeasurementFunc != nil {
		return m.GetMeasurementFunc(ctx, id)
	}
	return &models.Measurement{
		ID: id, Date: "2025-03-10", Category: "Electricity",
		Amount: 100, Unit: "kWh",
	}, nil
}

func (m *MockStorage) UpdateMeasurement(ctx context.Context, mm *models.Measurement) error {
	return nil
}
func (m *MockStorage) DeleteMeasurement(ctx context.Context, id int) error { return nil }

func (m *MockStorage) GetMeasurements(ctx context.Context, f db.MeasurementFilter) ([]models.Measurement, int, error) {
	if m.GetMeasurementsFunc != nil {
		return m.GetMeasurementsFunc(ctx, f)
	}
	return []models.Measurement{{ID: 1, Date: "2025-03-10", Category: "Electricity", Amount: 100, Unit: "kWh"}}, 1, nil
}

func (m *MockStorage) RecentMeasurements(ctx context.Context, limit int) ([]models.Measurement, error) {
	return []models.Measurement{}, nil
}

func (m *MockStorage) MeasurementsSummary(ctx context.Context, f db.MeasurementFilter) (*db.MeasurementsSummary, error) {
	return &db.MeasurementsSummary{
		TotalEmissions: 50,
		ScopeTotals:    map[string]float64{"scope_1": 0, "scope_2": 50, "scope_3": 0},
		CategoryTotals: map[string]float64{"Electricity": 50},
		Count:          1,
	}, nil
}

func (m *MockStorage) RecalculateEmissions(ctx context.Context) (int, error) { return 3, nil }

func (m *MockStorage) MeasurementLocations(ctx context.Context) ([]string, error) {
	return []string{"HQ"}, nil
}

func (m *MockStorage) CreateSupplier(ctx context.Context, sup *models.Supplier) error {
	if m.CreateSupplierFunc != nil {
		return m.CreateSupplierFunc(ctx, sup)
	}
	sup.ID = 1
	return nil
}

func (m *MockStorage) GetSupplier(ctx context.Context, id int) (*models.Supplier, error) {
	if m.GetSupplierFunc != nil {
		return m.GetSupplierFunc(ctx, id)
	}
	return &models.Supplier{ID: id, CompanyName: "Acme Logistics", Scope3Categories: models.StringList{}}, nil
}

func (m *MockStorage) UpdateSupplier(ctx context.Context, sup *models.Supplier) error { return nil }
func (m *MockStorage) DeleteSupplier(ctx context.Context, id int) error { return nil }

func (m *MockStorage) GetSuppliers(ctx context.Context, f db.SupplierFilter) ([]models.Supplier, int, error) {
	if m.GetSuppliersFunc != nil {
		return m.GetSuppliersFunc(ctx, f)
	}
	return []models.Supplier{{ID: 1, CompanyName: "Acme Logistics"}}, 1, nil
}

func (m *MockStorage) CreateSupplierData(ctx context.Context, d *models.SupplierData) (float64, error) {
	if m.CreateSupplierDataFunc != nil {
		return m.CreateSupplierDataFunc(ctx, d)
	}
	d.ID = 1
	return 10, nil
}

func (m *MockStorage) GetSupplierData(ctx context.Context, supplierID int) ([]models.SupplierData, error) {
	return []models.SupplierData{}, nil
}

func (m *MockStorage) SupplierSummary(ctx context.Context) (*db.SupplierSummary, error) {
	if m.SupplierSummaryFunc != nil {
		return m.SupplierSummaryFunc(ctx)
	}
	return &db.SupplierSummary{
		TotalSuppliers: 3,
		StatusCounts:   map[string]int{"pending": 2, "complete": 1, "overdue": 0},
		RatingCounts:   map[string]int{"A": 1, "B": 0, "C": 2, "D": 0, "F": 0},
		IndustryCounts: map[string]int{"Logistics": 3},
	}, nil
}

func (m *MockStorage) CreateTarget(ctx context.Context, t *models.ESGTarget) error {
	if m.CreateTargetFunc != nil {
		return m.CreateTargetFunc(ctx, t)
	}
	t.ID = 1
	return nil
}

func (m *MockStorage) GetTarget(ctx context.Context, id int) (*models.ESGTarget, error) {
	if m.GetTargetFunc != nil {
		return m.GetTargetFunc(ctx, id)
	}
	return &models.ESGTarget{
		ID: id, Name: "Cut Scope 2", TargetType: "emissions_reduction",
		BaselineValue: 1000, BaselineYear: 2020, TargetValue: 500,
		TargetYear: 2030, Unit: "tCO2e", Status: "active",
	}, nil
}

func (m *MockStorage) UpdateTarget(ctx context.Context, t *models.ESGTarget) error { return nil }
func (m *MockStorage) DeleteTarget(ctx context.Context, id int) error { return nil }

func (m *MockStorage) GetTargets(ctx context.Context, f db.TargetFilter) ([]models.ESGTarget, error) {
	if m.GetTargetsFunc != nil {
		return m.GetTargetsFunc(ctx, f)
	}
	return []models.ESGTarget{}, nil
}

func (m *MockStorage) ActiveTargets(ctx context.Context) ([]models.ESGTarget, error) {
	if m.ActiveTargetsFunc != nil {
		return m.ActiveTargetsFunc(ctx)
	}
	return []models.ESGTarget{}, nil
}

func (m *MockStorage) TargetStats(ctx context.Context) (*db.TargetStats, error) {
	return &db.TargetStats{
		TotalTargets:   2,
		ActiveTargets:  1,
		TypeBreakdown:  map[string]int{"emissions_reduction": 2},
		ScopeBreakdown: map[string]int{"Scope 2": 1},
	}, nil
}

func (m *MockStorage) ScopeEmissionsBetween(ctx context.Context, scope int, start, end string) (float64, error) {
	if m.ScopeEmissionsFunc != nil {
		return m.ScopeEmissionsFunc(ctx, scope, start, end)
	}
	return 0, nil
}

func (m *MockStorage) EmissionsInWindow(ctx context.Context, start, end string, scope *int) (float64, error) {
	if m.EmissionsInWindowFunc != nil {
		return m.EmissionsInWindowFunc(ctx, start, end, scope)
	}
	return 0, nil
}

func (m *MockStorage) CategoryEmissionsBetween(ctx context.Context, start, end string) (map[string]float64, error) {
	return map[string]float64{}, nil
}

func (m *MockStorage) CreateUser(ctx context.Context, u *models.User) error {
	u.ID = 1
	return nil
}

func (m *MockStorage) GetUser(ctx context.Context, id int) (*models.User, error) {
	if m.GetUserFunc != nil {
		return m.GetUserFunc(ctx, id)
	}
	return &models.User{ID: id, Username: "analyst", Email: "analyst@example.com", IsActive: true}, nil
}

func (m *MockStorage) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	if m.GetUserByUsernameFunc != nil {
		return m.GetUserByUsernameFunc(ctx, username)
	}
	return nil, sql.ErrNoRows
}

func (m *MockStorage) GetUsers(ctx context.Context) ([]models.User, error) {
	return []models.User{}, nil
}

func (m *MockStorage) UpdateUser(ctx context.Context, u *models.User) error { return nil }
func (m *MockStorage) SetUserActive(ctx context.Context, id int, active bool) error { return nil }
func (m *MockStorage) TouchLastLogin(ctx context.Context, id int) error { return nil }

func (m *MockStorage) UserExists(ctx context.Context, username, email string, excludeID int) (bool, error) {
	if m.UserExistsFunc != nil {
		return m.UserExistsFunc(ctx, username, email, excludeID)
	}
	return false, nil
}

func (m *MockStorage) CreateAsset(ctx context.Context, a *models.Asset) error {
	a.ID = 1
	return nil
}

func (m *MockStorage) GetAsset(ctx context.Context, id int) (*models.Asset, error) {
	return &models.Asset{ID: id, Name: "Chiller 1", AssetType: "chiller"}, nil
}

func (m *MockStorage) UpdateAsset(ctx context.Context, a *models.Asset) error { return nil }
func (m *MockStorage) DeleteAsset(ctx context.Context, id int) error { return nil }

func (m *MockStorage) GetAssets(ctx context.Context, f db.AssetFilter) ([]models.Asset, int, error) {
	return []models.Asset{{ID: 1, Name: "Chiller 1", AssetType: "chiller"}}, 1, nil
}

func (m *MockStorage) AssetTypes(ctx context.Context) ([]string, error) {
	return []string{"chiller"}, nil
}

func (m *MockStorage) AssetSummary(ctx context.Context) (*db.AssetSummary, error) {
	return &db.AssetSummary{TotalAssets: 1, TypeCounts: map[string]int{"chiller": 1}, StatusCounts: map[string]int{"operational": 1}}, nil
}

func (m *MockStorage) CreateProject(ctx context.Context, p *models.Project) error {
	p.ID = 1
	return nil
}

func (m *MockStorage) GetProject(ctx context.Context, id int) (*models.Project, error) {
	if m.GetProjectFunc != nil {
		return m.GetProjectFunc(ctx, id)
	}
	return &models.Project{ID: id, Name: "2025 Reductions", Year: 2025, StartDate: "2025-01-01", EndDate: "2025-12-31"}, nil
}

func (m *MockStorage) UpdateProject(ctx context.Context, p *models.Project) error { return nil }
func (m *MockStorage) DeleteProject(ctx context.Context, id int) error { return nil }

func (m *MockStorage) GetProjects(ctx context.Context, f db.ProjectFilter) ([]models.Project, int, error) {
	return []models.Project{}, 0, nil
}

func (m *MockStorage) GetProjectActivities(ctx context.Context, projectID int) ([]models.ProjectActivity, error) {
	return []models.ProjectActivity{}, nil
}

func (m *MockStorage) GetProjectActivity(ctx context.Context, projectID, activityID int) (*models.ProjectActivity, error) {
	return &models.ProjectActivity{ID: activityID, ProjectID: projectID, Description: "LED retrofit"}, nil
}

func (m *MockStorage) CreateProjectActivity(ctx context.Context, a *models.ProjectActivity) error {
	a.ID = 1
	return nil
}

func (m *MockStorage) UpdateProjectActivity(ctx context.Context, a *models.ProjectActivity) error {
	return nil
}

func (m *MockStorage) DeleteProjectActivity(ctx context.Context, projectID, activityID int) error {
	return nil
}

func (m *MockStorage) ProjectStatistics(ctx context.Context) (*db.ProjectStatistics, error) {
	return &db.ProjectStatistics{TotalProjects: 1, StatusCounts: map[string]int{"planning": 1}}, nil
}
