package model

// VersionInfo contains version information for the application.
type VersionInfo struct {
	AppVersion string `json:"app_version"`
	DbVersion  string `json:"db_version"`
}

// SystemSetting is a single key/value configuration row. Values holding
// secrets (such as the internal API key) are stored fernet-encrypted.
type SystemSetting struct {
	ID    string
	Key   string
	Value string
}
