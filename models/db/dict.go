package dbmodels

// SapModule is a reference-list entry for a SAP module (FI, MM, SD, ...).
type SapModule struct {
	BaseModel
	Code string `gorm:"type:varchar(16);uniqueIndex"`
	Name string `gorm:"type:varchar(128)"`
}

// Industry is a reference-list entry for a target industry.
type Industry struct {
	BaseModel
	Code string `gorm:"type:varchar(32);uniqueIndex"`
	Name string `gorm:"type:varchar(128)"`
}
