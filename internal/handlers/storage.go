package handlers

import (
	"context"

	"esgreport/db"
	"esgreport/models"
)

type StorageInterface interface {
	CreateEmissionFactor(ctx context.Context, f *models.EmissionFactor) error
	GetEmissionFactor(ctx context.Context, id int) (*models.EmissionFactor, error)
	UpdateEmissionFactor(ctx context.Context, f *models.EmissionFactor) error
	DeleteEmissionFactor(ctx context.Context, id int) error
	GetEmissionFactors(ctx context.Context, f db.FactorFilter) ([]models.EmissionFactor, int, error)
	FactorCategories(ctx context.Context) ([]string, error)
	FactorSubCategories(ctx context.Context, category string) ([]string, error)
	GetFactorRevisions(ctx context.Context, factorID int) ([]models.EmissionFactorRevision, error)
	GetFactorRevision(ctx context.Context, id int) (*models.EmissionFactorRevision, error)
	CreateFactorRevision(ctx context.Context, rev *models.EmissionFactorRevision) error
	ActivateFactorRevision(ctx context.Context, factorID, revisionID int) error
	DeleteFactorRevision(ctx context.Context, factorID, revisionID int) error
	ActiveFactorValue(ctx context.Context, factorID int) (float64, error)
	FactorInfo(ctx context.Context, factorID int) (*models.FactorInfo, error)

	CreateMeasurement(ctx context.Context, m *models.Measurement) error
	GetMeasurement(ctx context.Context, id int) (*models.Measurement, error)
	UpdateMeasurement(ctx context.Context, m *models.Measurement) error
	DeleteMeasurement(ctx context.Context, id int) error
	GetMeasurements(ctx context.Context, f db.MeasurementFilter) ([]models.Measurement, int, error)
	RecentMeasurements(ctx context.Context, limit int) ([]models.Measurement, error)
	MeasurementsSummary(ctx context.Context, f db.MeasurementFilter) (*db.MeasurementsSummary, error)
	RecalculateEmissions(ctx context.Context) (int, error)
	MeasurementLocations(ctx context.Context) ([]string, error)

	CreateSupplier(ctx context.Context, sup *models.Supplier) error
	GetSupplier(ctx context.Context, id int) (*models.Supplier, error)
	UpdateSupplier(ctx context.Context, sup *models.Supplier) error
	DeleteSupplier(ctx context.Context, id int) error
	GetSuppliers(ctx context.Context, f db.SupplierFilter) ([]models.Supplier, int, error)
	CreateSupplierData(ctx context.Context, d *models.SupplierData) (float64, error)
	GetSupplierData(ctx context.Context, supplierID int) ([]models.SupplierData, error)
	SupplierSummary(ctx context.Context) (*db.SupplierSummary, error)

	CreateTarget(ctx context.Context, t *models.ESGTarget) error
	GetTarget(ctx context.Context, id int) (*models.ESGTarget, error)
	UpdateTarget(ctx context.Context, t *models.ESGTarget) error
	DeleteTarget(ctx context.Context, id int) error
	GetTargets(ctx context.Context, f db.TargetFilter) ([]models.ESGTarget, error)
	ActiveTargets(ctx context.Context) ([]models.ESGTarget, error)
	TargetStats(ctx context.Context) (*db.TargetStats, error)

	ScopeEmissionsBetween(ctx context.Context, scope int, start, end string) (float64, error)
	EmissionsInWindow(ctx context.Context, start, end string, scope *int) (float64, error)
	CategoryEmissionsBetween(ctx context.Context, start, end string) (map[string]float64, error)

	CreateUser(ctx context.Context, u *models.User) error
	GetUser(ctx context.Context, id int) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	GetUsers(ctx context.Context) ([]models.User, error)
	UpdateUser(ctx context.Context, u *models.User) error
	SetUserActive(ctx context.Context, id int, active bool) error
	TouchLastLogin(ctx context.Context, id int) error
	UserExists(ctx context.Context, username, email string, excludeID int) (bool, error)

	CreateAsset(ctx context.Context, a *models.Asset) error
	GetAsset(ctx context.Context, id int) (*models.Asset, error)
	UpdateAsset(ctx context.Context, a *models.Asset) error
	DeleteAsset(ctx context.Context, id int) error
	GetAssets(ctx context.Context, f db.AssetFilter) ([]models.Asset, int, error)
	AssetTypes(ctx context.Context) ([]string, error)
	AssetSummary(ctx context.Context) (*db.AssetSummary, error)

	CreateProject(ctx context.Context, p *models.Project) error
	GetProject(ctx context.Context, id int) (*models.Project, error)
	UpdateProject(ctx context.Context, p *models.Project) error
	DeleteProject(ctx context.Context, id int) error
	GetProjects(ctx context.Context, f db.ProjectFilter) ([]models.Project, int, error)
	GetProjectActivities(ctx context.Context, projectID int) ([]models.ProjectActivity, error)
	GetProjectActivity(ctx context.Context, projectID, activityID int) (*models.ProjectActivity, error)
	CreateProjectActivity(ctx context.Context, a *models.ProjectActivity) error
	UpdateProjectActivity(ctx context.Context, a *models.ProjectActivity) error
	DeleteProjectActivity(ctx context.Context, projectID, activityID int) error
	ProjectStatistics(ctx context.Context) (*db.ProjectStatistics, error)
}
