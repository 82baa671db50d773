package catalog

import (
	"github.com/stitchdesk/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Aggregate type constant
const AggregateTypeOutfit = "Outfit"

// Event type constants
const (
	EventTypeOutfitCreated       = "OutfitCreated"
	EventTypeOutfitPricesUpdated = "OutfitPricesUpdated"
)

// OutfitCreatedEvent is published when a new outfit is added to the catalog
type OutfitCreatedEvent struct {
	shared.BaseDomainEvent
	OutfitID uuid.UUID `json:"outfit_id"`
	Name     string    `json:"name"`
	Code     string    `json:"code"`
}

// NewOutfitCreatedEvent creates a new OutfitCreatedEvent
func NewOutfitCreatedEvent(outfit *Outfit) *OutfitCreatedEvent {
	return &OutfitCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOutfitCreated, AggregateTypeOutfit, outfit.ID, outfit.TenantID),
		OutfitID:        outfit.ID,
		Name:            outfit.Name,
		Code:            outfit.Code,
	}
}

// OutfitPricesUpdatedEvent is published when an outfit's price lists change
type OutfitPricesUpdatedEvent struct {
	shared.BaseDomainEvent
	OutfitID        uuid.UUID       `json:"outfit_id"`
	StitchingPrice  decimal.Decimal `json:"stitching_price"`
	AlterationPrice decimal.Decimal `json:"alteration_price"`
}

// NewOutfitPricesUpdatedEvent creates a new OutfitPricesUpdatedEvent
func NewOutfitPricesUpdatedEvent(outfit *Outfit) *OutfitPricesUpdatedEvent {
	return &OutfitPricesUpdatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOutfitPricesUpdated, AggregateTypeOutfit, outfit.ID, outfit.TenantID),
		OutfitID:        outfit.ID,
		StitchingPrice:  outfit.StitchingPrice,
		AlterationPrice: outfit.AlterationPrice,
	}
}
