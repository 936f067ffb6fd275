package migration

import (
	"fmt"
	"strings"

	"github.com/projectchronos/chronos/chronos/database/models"
)

func (m *Migrator) convertMongoCard(mc MongoCard) (models.CardDefinition, error) {
	def := models.CardDefinition{
		Name:        strings.TrimSpace(mc.Name),
		Description: strings.TrimSpace(mc.Description),
		Image:       mc.Image,
		Element:     models.Element(normalize(mc.Element)),
		Class:       models.CardClass(normalize(mc.Class)),
		Power:       mc.Power,
		Health:      mc.Health,
		Agility:     mc.Agility,
		Rarity:      models.Rarity(normalize(mc.Rarity)),
	}
	if err := def.Validate(); err != nil {
		return models.CardDefinition{}, fmt.Errorf("card %q: %w", mc.Name, err)
	}
	return def, nil
}

func (m *Migrator) convertJSONCard(jc JSONCard) (models.CardDefinition, error) {
	image := jc.Image
	if image == "" {
		image = jc.ImageURL
	}
	def := models.CardDefinition{
		Name:        strings.TrimSpace(jc.Name),
		Description: strings.TrimSpace(jc.Description),
		Image:       image,
		Element:     models.Element(normalize(jc.Element)),
		Class:       models.CardClass(normalize(jc.Class)),
		Power:       jc.Power,
		Health:      jc.Health,
		Agility:     jc.Agility,
		Rarity:      models.Rarity(normalize(jc.Rarity)),
	}
	if err := def.Validate(); err != nil {
		return models.CardDefinition{}, fmt.Errorf("card %q: %w", jc.Name, err)
	}
	return def, nil
}

// normalize folds legacy catalog spellings ("Chronos", " MELEE ") into the
// canonical lowercase enum values.
func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// mergePool appends the incoming cards to pool, skipping names already
// present. Returns the merged pool and the number of cards added.
func mergePool(pool, incoming []models.CardDefinition) ([]models.CardDefinition, int) {
	seen := make(map[string]bool, len(pool))
	for _, c := range pool {
		seen[strings.ToLower(c.Name)] = true
	}

	added := 0
	for _, c := range incoming {
		key := strings.ToLower(c.Name)
		if seen[key] {
			continue
		}
		seen[key] = true
		pool = append(pool, c)
		added++
	}
	return pool, added
}
