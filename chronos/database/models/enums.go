package models

import (
	"fmt"
	"strings"
)

// PackType identifies a pack recipe family. Exactly one active template per
// type may exist at a time (enforced by a partial unique index).
type PackType string

const (
	PackTypeWelcome PackType = "welcome"
	PackTypeStarter PackType = "starter"
	PackTypeChronos PackType = "chronos"
	PackTypeUmbra   PackType = "umbra"
	PackTypeAether  PackType = "aether"
	PackTypeCryo    PackType = "cryo"
)

// AllPackTypes lists every valid pack type, in declaration order.
func AllPackTypes() []PackType {
	return []PackType{
		PackTypeWelcome,
		PackTypeStarter,
		PackTypeChronos,
		PackTypeUmbra,
		PackTypeAether,
		PackTypeCryo,
	}
}

func (t PackType) Valid() bool {
	switch t {
	case PackTypeWelcome, PackTypeStarter, PackTypeChronos, PackTypeUmbra, PackTypeAether, PackTypeCryo:
		return true
	}
	return false
}

func (t PackType) String() string { return string(t) }

// ParsePackType parses a case-insensitive pack type name.
func ParsePackType(s string) (PackType, error) {
	t := PackType(strings.ToLower(strings.TrimSpace(s)))
	if !t.Valid() {
		return "", fmt.Errorf("unknown pack type %q", s)
	}
	return t, nil
}

// Rarity is a card rarity tier used by weighted draws.
type Rarity string

const (
	RarityCommon    Rarity = "common"
	RarityRare      Rarity = "rare"
	RarityEpic      Rarity = "epic"
	RarityLegendary Rarity = "legendary"
)

func AllRarities() []Rarity {
	return []Rarity{RarityCommon, RarityRare, RarityEpic, RarityLegendary}
}

func (r Rarity) Valid() bool {
	switch r {
	case RarityCommon, RarityRare, RarityEpic, RarityLegendary:
		return true
	}
	return false
}

func (r Rarity) String() string { return string(r) }

func ParseRarity(s string) (Rarity, error) {
	r := Rarity(strings.ToLower(strings.TrimSpace(s)))
	if !r.Valid() {
		return "", fmt.Errorf("unknown rarity %q", s)
	}
	return r, nil
}

// Element is the elemental affinity of a card.
type Element string

const (
	ElementChronos Element = "chronos"
	ElementUmbra   Element = "umbra"
	ElementAether  Element = "aether"
	ElementCryo    Element = "cryo"
)

func (e Element) Valid() bool {
	switch e {
	case ElementChronos, ElementUmbra, ElementAether, ElementCryo:
		return true
	}
	return false
}

func (e Element) String() string { return string(e) }

// CardClass is the combat class of a card.
type CardClass string

const (
	CardClassMelee  CardClass = "melee"
	CardClassRanged CardClass = "ranged"
)

func (c CardClass) Valid() bool {
	return c == CardClassMelee || c == CardClassRanged
}

func (c CardClass) String() string { return string(c) }

// PackStatus is the lifecycle state of a generated pack. The only legal
// transition is Available -> Claimed, and it happens exactly once.
type PackStatus string

const (
	PackStatusAvailable PackStatus = "available"
	PackStatusClaimed   PackStatus = "claimed"
)

func (s PackStatus) String() string { return string(s) }

// OnChainStatus tracks the outcome of the post-claim ledger call.
type OnChainStatus string

const (
	OnChainPending   OnChainStatus = "pending"
	OnChainSucceeded OnChainStatus = "succeeded"
	OnChainFailed    OnChainStatus = "failed"
)

func (s OnChainStatus) String() string { return string(s) }
