package utils

import "github.com/google/uuid"

// UUIDGenerator produces record identifiers. UUIDv7 keeps identifiers
// time-sortable, which keeps the created_at index and primary key in
// roughly the same order.
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
