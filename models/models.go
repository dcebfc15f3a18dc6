package models

import "time"

// EmissionFactor converts an activity quantity into CO2e mass.
// Scope follows the GHG Protocol (1 direct, 2 energy, 3 value chain).
type EmissionFactor struct {
	ID            int       `db:"id" json:"id"`
	Name          string    `db:"name" json:"name"`
	Scope         int       `db:"scope" json:"scope"`
	Category      string    `db:"category" json:"category"`
	SubCategory   string    `db:"sub_category" json:"sub_category"`
	FactorValue   float64   `db:"factor_value" json:"factor_value"`
	Unit          string    `db:"unit" json:"unit"`
	Source        string    `db:"source" json:"source"`
	EffectiveDate string    `db:"effective_date" json:"effective_date"`
	Description   string    `db:"description" json:"description"`
	Link          string    `db:"link" json:"link"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time `db:"updated_at" json:"updated_at"`
}

// EmissionFactorRevision is a versioned snapshot of a factor. At most one
// revision per factor is active; the active value wins over the base factor.
type EmissionFactorRevision struct {
	ID             int       `db:"id" json:"id"`
	ParentFactorID int       `db:"parent_factor_id" json:"parent_factor_id"`
	Name           string    `db:"name" json:"name"`
	Scope          int       `db:"scope" json:"scope"`
	Category       string    `db:"category" json:"category"`
	SubCategory    string    `db:"sub_category" json:"sub_category"`
	FactorValue    float64   `db:"factor_value" json:"factor_value"`
	Unit           string    `db:"unit" json:"unit"`
	Source         string    `db:"source" json:"source"`
	EffectiveDate  string    `db:"effective_date" json:"effective_date"`
	Description    string    `db:"description" json:"description"`
	Link           string    `db:"link" json:"link"`
	RevisionNotes  string    `db:"revision_notes" json:"revision_notes"`
	Version        int       `db:"version" json:"version"`
	IsActive       bool      `db:"is_active" json:"is_active"`
	CreatedBy      string    `db:"created_by" json:"created_by"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
}

// FactorInfo is the emission-factor view embedded in measurement responses.
// It reflects the active revision when one exists.
type FactorInfo struct {
	ID              int     `json:"id"`
	Name            string  `json:"name"`
	Category        string  `json:"category"`
	SubCategory     string  `json:"sub_category"`
	FactorValue     float64 `json:"factor_value"`
	Unit            string  `json:"unit"`
	Source          string  `json:"source"`
	RevisionCount   int     `json:"revision_count"`
	CurrentRevision int     `json:"current_revision"`
	IsUsingRevision bool    `json:"is_using_revision"`
}

// Measurement is a single activity record. CalculatedEmissions is derived at
// write time from amount x the linked factor's active value and stays null
// when no factor is linked.
type Measurement struct {
	ID                  int         `db:"id" json:"id"`
	Date                string      `db:"date" json:"date"`
	Location            string      `db:"location" json:"location"`
	Category            string      `db:"category" json:"category"`
	SubCategory         string      `db:"sub_category" json:"sub_category"`
	Amount              float64     `db:"amount" json:"amount"`
	Unit                string      `db:"unit" json:"unit"`
	EmissionFactorID    *int        `db:"emission_factor_id" json:"emission_factor_id"`
	CalculatedEmissions *float64    `db:"calculated_emissions" json:"calculated_emissions"`
	Notes               string      `db:"notes" json:"notes"`
	CreatedAt           time.Time   `db:"created_at" json:"created_at"`
	UpdatedAt           time.Time   `db:"updated_at" json:"updated_at"`
	EmissionFactor      *FactorInfo `db:"-" json:"emission_factor,omitempty"`
}

// Supplier tracks a Scope 3 counterparty. DataCompleteness is a derived
// 0-100 score recomputed on every SupplierData insert.
type Supplier struct {
	ID               int        `db:"id" json:"id"`
	CompanyName      string     `db:"company_name" json:"company_name"`
	Industry         string     `db:"industry" json:"industry"`
	ContactPerson    string     `db:"contact_person" json:"contact_person"`
	Email            string     `db:"email" json:"email"`
	Phone            string     `db:"phone" json:"phone"`
	ESGRating        string     `db:"esg_rating" json:"esg_rating"`
	DataCompleteness float64    `db:"data_completeness" json:"data_completeness"`
	LastUpdated      string     `db:"last_updated" json:"last_updated"`
	Status           string     `db:"status" json:"status"`
	PriorityLevel    string     `db:"priority_level" json:"priority_level"`
	Scope3Categories StringList `db:"scope3_categories" json:"scope3_categories"`
	AnnualSpend      float64    `db:"annual_spend" json:"annual_spend"`
	Notes            string     `db:"notes" json:"notes"`
	CreatedAt        time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time  `db:"updated_at" json:"updated_at"`
}

// SupplierData is one ESG data point submitted for a supplier.
type SupplierData struct {
	ID                 int       `db:"id" json:"id"`
	SupplierID         int       `db:"supplier_id" json:"supplier_id"`
	DataType           string    `db:"data_type" json:"data_type"`
	Scope3Category     string    `db:"scope3_category" json:"scope3_category"`
	Value              float64   `db:"value" json:"value"`
	Unit               string    `db:"unit" json:"unit"`
	ReportingPeriod    string    `db:"reporting_period" json:"reporting_period"`
	DataQuality        string    `db:"data_quality" json:"data_quality"`
	VerificationStatus string    `db:"verification_status" json:"verification_status"`
	Notes              string    `db:"notes" json:"notes"`
	CreatedAt          time.Time `db:"created_at" json:"created_at"`
	UpdatedAt          time.Time `db:"updated_at" json:"updated_at"`
}

// ESGTarget is a reduction or efficiency goal. Scope is nil for
// non-emission targets.
type ESGTarget struct {
	ID                 int       `db:"id" json:"id"`
	Name               string    `db:"name" json:"name"`
	Description        string    `db:"description" json:"description"`
	TargetType         string    `db:"target_type" json:"target_type"`
	Scope              *int      `db:"scope" json:"scope"`
	BaselineValue      float64   `db:"baseline_value" json:"baseline_value"`
	BaselineYear       int       `db:"baseline_year" json:"baseline_year"`
	TargetValue        float64   `db:"target_value" json:"target_value"`
	TargetYear         int       `db:"target_year" json:"target_year"`
	Unit               string    `db:"unit" json:"unit"`
	CurrentValue       *float64  `db:"current_value" json:"current_value"`
	ProgressPercentage float64   `db:"progress_percentage" json:"progress_percentage"`
	Status             string    `db:"status" json:"status"`
	CreatedAt          time.Time `db:"created_at" json:"created_at"`
	UpdatedAt          time.Time `db:"updated_at" json:"updated_at"`
}

// User is an account on a customer instance.
type User struct {
	ID           int        `db:"id" json:"id"`
	Username     string     `db:"username" json:"username"`
	Email        string     `db:"email" json:"email"`
	PasswordHash string     `db:"password_hash" json:"-"`
	FirstName    string     `db:"first_name" json:"first_name"`
	LastName     string     `db:"last_name" json:"last_name"`
	Phone        string     `db:"phone" json:"phone"`
	Department   string     `db:"department" json:"department"`
	JobTitle     string     `db:"job_title" json:"job_title"`
	Role         string     `db:"role" json:"role"`
	IsActive     bool       `db:"is_active" json:"is_active"`
	LastLogin    *time.Time `db:"last_login" json:"last_login"`
	CreatedAt    time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time  `db:"updated_at" json:"updated_at"`
}

// Asset is a physical energy consumer (chiller, compressor, pump, ...).
type Asset struct {
	ID                  int       `db:"id" json:"id"`
	Name                string    `db:"name" json:"name"`
	AssetType           string    `db:"asset_type" json:"asset_type"`
	Model               string    `db:"model" json:"model"`
	Manufacturer        string    `db:"manufacturer" json:"manufacturer"`
	SerialNumber        string    `db:"serial_number" json:"serial_number"`
	Location            string    `db:"location" json:"location"`
	InstallationDate    string    `db:"installation_date" json:"installation_date"`
	Capacity            *float64  `db:"capacity" json:"capacity"`
	CapacityUnit        string    `db:"capacity_unit" json:"capacity_unit"`
	PowerRating         *float64  `db:"power_rating" json:"power_rating"`
	EfficiencyRating    *float64  `db:"efficiency_rating" json:"efficiency_rating"`
	AnnualKWh           *float64  `db:"annual_kwh" json:"annual_kwh"`
	AnnualCO2e          *float64  `db:"annual_co2e" json:"annual_co2e"`
	MaintenanceSchedule string    `db:"maintenance_schedule" json:"maintenance_schedule"`
	LastMaintenance     string    `db:"last_maintenance" json:"last_maintenance"`
	NextMaintenance     string    `db:"next_maintenance" json:"next_maintenance"`
	Status              string    `db:"status" json:"status"`
	Notes               string    `db:"notes" json:"notes"`
	CreatedAt           time.Time `db:"created_at" json:"created_at"`
	UpdatedAt           time.Time `db:"updated_at" json:"updated_at"`
}

// Project groups reduction activities under a yearly initiative.
type Project struct {
	ID                        int               `db:"id" json:"id"`
	Name                      string            `db:"name" json:"name"`
	Description               string            `db:"description" json:"description"`
	Year                      int               `db:"year" json:"year"`
	StartDate                 string            `db:"start_date" json:"start_date"`
	EndDate                   string            `db:"end_date" json:"end_date"`
	Status                    string            `db:"status" json:"status"`
	TargetReductionPercentage *float64          `db:"target_reduction_percentage" json:"target_reduction_percentage"`
	TargetReductionAbsolute   *float64          `db:"target_reduction_absolute" json:"target_reduction_absolute"`
	TargetReductionUnit       string            `db:"target_reduction_unit" json:"target_reduction_unit"`
	BaselineValue             *float64          `db:"baseline_value" json:"baseline_value"`
	BaselineYear              *int              `db:"baseline_year" json:"baseline_year"`
	CreatedAt                 time.Time         `db:"created_at" json:"created_at"`
	UpdatedAt                 time.Time         `db:"updated_at" json:"updated_at"`
	Activities                []ProjectActivity `db:"-" json:"activities,omitempty"`
}

// ProjectActivity is a unit of work inside a project. EmissionCategories and
// MeasurementIDs link the activity to the measurement data it affects.
type ProjectActivity struct {
	ID                   int        `db:"id" json:"id"`
	ProjectID            int        `db:"project_id" json:"project_id"`
	Description          string     `db:"description" json:"description"`
	DueDate              string     `db:"due_date" json:"due_date"`
	StartDate            string     `db:"start_date" json:"start_date"`
	EndDate              string     `db:"end_date" json:"end_date"`
	Status               string     `db:"status" json:"status"`
	CompletionPercentage float64    `db:"completion_percentage" json:"completion_percentage"`
	EstimatedHours       *float64   `db:"estimated_hours" json:"estimated_hours"`
	ActualHours          *float64   `db:"actual_hours" json:"actual_hours"`
	RiskLevel            string     `db:"risk_level" json:"risk_level"`
	BudgetAllocated      *float64   `db:"budget_allocated" json:"budget_allocated"`
	BudgetSpent          float64    `db:"budget_spent" json:"budget_spent"`
	EmissionCategories   StringList `db:"emission_categories" json:"emission_categories"`
	MeasurementIDs       IntList    `db:"measurement_ids" json:"measurement_ids"`
	Priority             string     `db:"priority" json:"priority"`
	AssignedTo           string     `db:"assigned_to" json:"assigned_to"`
	Notes                string     `db:"notes" json:"notes"`
	CreatedAt            time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt            time.Time  `db:"updated_at" json:"updated_at"`
}
