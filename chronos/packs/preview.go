package packs

import (
	"context"

	"github.com/projectchronos/chronos/chronos/database/models"
)

// GetPackContent draws a representative preview of what a pack of the type
// could contain. The draw is throwaway: no pack is generated and inventory
// is untouched.
func (s *Service) GetPackContent(ctx context.Context, packType models.PackType) (*ExpressPackContent, error) {
	template, err := s.ResolveTemplateByType(ctx, packType)
	if err != nil {
		return nil, err
	}

	cards, err := drawCards(template, s.rnd)
	if err != nil {
		return nil, err
	}

	out := make([]ExpressCard, 0, len(cards))
	for _, card := range cards {
		out = append(out, s.projectCard(card))
	}
	return &ExpressPackContent{
		Type:       packType.String(),
		TemplateID: template.ID,
		Cards:      out,
	}, nil
}
