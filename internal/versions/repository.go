package versions

import (
	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

func NewEntityRecordRepository(db *bun.DB) repository.Repository[*ContentEntity] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*ContentEntity]{
		NewRecord: func() *ContentEntity { return &ContentEntity{} },
		GetID: func(e *ContentEntity) uuid.UUID {
			return e.ID
		},
		SetID: func(e *ContentEntity, id uuid.UUID) {
			e.ID = id
		},
		GetIdentifier: func() string {
			return "id"
		},
		GetIdentifierValue: func(e *ContentEntity) string {
			return e.ID.String()
		},
	})
}

func NewLanguageVersionRecordRepository(db *bun.DB) repository.Repository[*LanguageVersion] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*LanguageVersion]{
		NewRecord: func() *LanguageVersion { return &LanguageVersion{} },
		GetID: func(v *LanguageVersion) uuid.UUID {
			return v.ID
		},
		SetID: func(v *LanguageVersion, id uuid.UUID) {
			v.ID = id
		},
		GetIdentifier: func() string {
			return "id"
		},
		GetIdentifierValue: func(v *LanguageVersion) string {
			return v.ID.String()
		},
	})
}
