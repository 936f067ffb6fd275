package migration

// MongoCard mirrors a card document in the legacy Mongo catalog.
type MongoCard struct {
	Name        string      `bson:"name"`
	Description string      `bson:"description"`
	Image       string      `bson:"image"`
	Element     string      `bson:"element"`
	Class       string      `bson:"class"`
	Power       int         `bson:"power"`
	Health      int         `bson:"health"`
	Agility     int         `bson:"agility"`
	Rarity      string      `bson:"rarity"`
	Tags        interface{} `bson:"tags"`
}

// JSONCard mirrors a card entry in the legacy JSON export. The export used
// looser field names than the Mongo catalog, so both spellings are accepted.
type JSONCard struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Image       string `json:"image"`
	ImageURL    string `json:"imageUrl"`
	Element     string `json:"element"`
	Class       string `json:"class"`
	Power       int    `json:"power"`
	Health      int    `json:"health"`
	Agility     int    `json:"agility"`
	Rarity      string `json:"rarity"`
}

// TableStats tracks per-step counts for the final report.
type TableStats struct {
	Read     int
	Imported int
	Skipped  int
}

// MigrationStats aggregates the run.
type MigrationStats struct {
	Steps map[string]*TableStats
}

func (s *MigrationStats) step(name string) *TableStats {
	if s.Steps == nil {
		s.Steps = make(map[string]*TableStats)
	}
	st, ok := s.Steps[name]
	if !ok {
		st = &TableStats{}
		s.Steps[name] = st
	}
	return st
}
