package models

// Field length limits shared by validation and the schema
const (
	MaxUsernameLength   = 150
	MaxPersonNameLength = 150
	MaxStatusNameLength = 100
	MaxLabelNameLength  = 100
	MaxTaskNameLength   = 150
	MinPasswordLength   = 8
)
