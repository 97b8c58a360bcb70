// Package models contains database model definitions.
package models

// Setting is a named JSON blob. The network identity lives under one key.
type Setting struct {
	ID    uint64 `gorm:"primaryKey"`
	Name  string `gorm:"unique"`
	Value []byte `gorm:"type:blob"`
}
