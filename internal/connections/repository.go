package connections

import (
	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

func NewConnectionRecordRepository(db *bun.DB) repository.Repository[*Connection] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*Connection]{
		NewRecord: func() *Connection { return &Connection{} },
		GetID: func(c *Connection) uuid.UUID {
			return c.ID
		},
		SetID: func(c *Connection, id uuid.UUID) {
			c.ID = id
		},
		GetIdentifier: func() string {
			return "id"
		},
		GetIdentifierValue: func(c *Connection) string {
			return c.ID.String()
		},
	})
}

func NewOverrideRecordRepository(db *bun.DB) repository.Repository[*OpeningHoursOverride] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*OpeningHoursOverride]{
		NewRecord: func() *OpeningHoursOverride { return &OpeningHoursOverride{} },
		GetID: func(o *OpeningHoursOverride) uuid.UUID {
			return o.ID
		},
		SetID: func(o *OpeningHoursOverride, id uuid.UUID) {
			o.ID = id
		},
		GetIdentifier: func() string {
			return "id"
		},
		GetIdentifierValue: func(o *OpeningHoursOverride) string {
			return o.ID.String()
		},
	})
}
