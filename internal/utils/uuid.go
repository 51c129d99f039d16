package utils

import (
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

type UUIDGenerator struct {
}

func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

func (g *UUIDGenerator) Generate() string {
	v7, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}

	return v7.String()
}

// GenerateFileName returns a collision-resistant random file name that keeps
// the (lower-cased) extension of the original file name.
//
// Example: "My Photo.JPG" → "0190cafe-....jpg".
func (g *UUIDGenerator) GenerateFileName(originalName string) string {
	ext := strings.ToLower(filepath.Ext(originalName))
	return g.Generate() + ext
}
