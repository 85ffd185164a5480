package constants

const (
	AppName       = "hms"
	ServiceName   = "hms_backend"
	ConfigName    = "config"
	ConfigFormat  = "yaml"
	EnvPrefix     = "HMS"
	DefaultRegion = "US"
)

// Roles stored on user documents.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

const (
	// DefaultHospitalCharge is added to every consultant fee when no
	// payment.hospital_charge is configured.
	DefaultHospitalCharge = 500.0

	// DefaultPeakLimit caps the peak test/treatment date reports.
	DefaultPeakLimit = 5
)
