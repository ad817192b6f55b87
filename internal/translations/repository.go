package translations

import (
	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

func NewOrderRecordRepository(db *bun.DB) repository.Repository[*TranslationOrder] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*TranslationOrder]{
		NewRecord: func() *TranslationOrder { return &TranslationOrder{} },
		GetID: func(o *TranslationOrder) uuid.UUID {
			return o.ID
		},
		SetID: func(o *TranslationOrder, id uuid.UUID) {
			o.ID = id
		},
		GetIdentifier: func() string {
			return "id"
		},
		GetIdentifierValue: func(o *TranslationOrder) string {
			return o.ID.String()
		},
	})
}
