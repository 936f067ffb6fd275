package packs

import (
	"time"

	"github.com/projectchronos/chronos/chronos/database/models"
)

// BaseServiceResult carries success/failure plus a human-readable reason.
// Expected conditions (out of stock, on-chain failure) are reported here,
// not as errors.
type BaseServiceResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// CreatedPacks summarizes one generation batch.
type CreatedPacks struct {
	TemplateID int64    `json:"templateId"`
	Count      int      `json:"count"`
	PackIDs    []string `json:"packIds"`
}

// ClaimCode classifies claim outcomes for transport mapping.
type ClaimCode string

const (
	ClaimCodeOK          ClaimCode = "claimed"
	ClaimCodeOutOfStock  ClaimCode = "out_of_stock"
	ClaimCodeInvalidType ClaimCode = "invalid_type"
)

// ClaimResult is the outcome of a claim attempt. Success refers to the claim
// leg; the on-chain leg is reported separately and a failed leg is retriable
// without re-running the claim.
type ClaimResult struct {
	BaseServiceResult
	Code       ClaimCode            `json:"code"`
	Pack       *ExpressPack         `json:"pack,omitempty"`
	OnChain    models.OnChainStatus `json:"onChain,omitempty"`
	OnChainRef string               `json:"onChainRef,omitempty"`
}

// ExpressCard is the transport projection of a card instance.
type ExpressCard struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Image       string `json:"image"`
	Element     string `json:"element"`
	Class       string `json:"class"`
	Power       int    `json:"power"`
	Health      int    `json:"health"`
	Agility     int    `json:"agility"`
	Rarity      string `json:"rarity"`
}

// ExpressPack is the transport projection of a claimed or available pack.
type ExpressPack struct {
	PackID    string        `json:"packId"`
	Type      string        `json:"type"`
	Status    string        `json:"status"`
	OwnerID   string        `json:"ownerId,omitempty"`
	ClaimedAt *time.Time    `json:"claimedAt,omitempty"`
	Cards     []ExpressCard `json:"cards"`
}

// ExpressClaim is the transport projection of one claim audit record.
type ExpressClaim struct {
	PackID     string    `json:"packId"`
	ClaimedAt  time.Time `json:"claimedAt"`
	OnChain    string    `json:"onChain"`
	OnChainRef string    `json:"onChainRef,omitempty"`
}

// ExpressPackContent is a non-allocating preview of what a pack of a type
// could contain. It is drawn on the fly and never persisted.
type ExpressPackContent struct {
	Type       string        `json:"type"`
	TemplateID int64         `json:"templateId"`
	Cards      []ExpressCard `json:"cards"`
}

// ArtResolver resolves the externally served image URL for a card. A nil
// resolver leaves the card's stored image reference untouched.
type ArtResolver interface {
	CardImageURL(card models.CardInstance) string
}

func (s *Service) projectCard(card models.CardInstance) ExpressCard {
	image := card.Image
	if s.art != nil {
		if url := s.art.CardImageURL(card); url != "" {
			image = url
		}
	}
	return ExpressCard{
		Name:        card.Name,
		Description: card.Description,
		Image:       image,
		Element:     card.Element.String(),
		Class:       card.Class.String(),
		Power:       card.Power,
		Health:      card.Health,
		Agility:     card.Agility,
		Rarity:      card.Rarity.String(),
	}
}

func (s *Service) projectPack(pack *models.CardPack) *ExpressPack {
	cards := make([]ExpressCard, 0, len(pack.Cards))
	for _, card := range pack.Cards {
		cards = append(cards, s.projectCard(card))
	}
	return &ExpressPack{
		PackID:    pack.PackID,
		Type:      pack.Type.String(),
		Status:    pack.Status.String(),
		OwnerID:   pack.OwnerID,
		ClaimedAt: pack.ClaimedAt,
		Cards:     cards,
	}
}
