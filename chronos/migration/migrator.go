// Package migration imports the legacy card catalog into pack template card
// pools. The catalog lives either in a live MongoDB database or in a JSON
// export directory.
package migration

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/projectchronos/chronos/chronos/database/models"
	"github.com/uptrace/bun"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

const defaultBatchSize = 500

type Migrator struct {
	pgDB      *bun.DB
	mongoDB   *mongo.Database
	dataDir   string
	batchSize int
	collNames map[string]string
	stats     MigrationStats
}

func NewMigrator(pgDB *bun.DB, dataDir string) *Migrator {
	return &Migrator{
		pgDB:      pgDB,
		dataDir:   dataDir,
		batchSize: defaultBatchSize,
	}
}

func (m *Migrator) SetBatchSize(size int) {
	if size > 0 {
		m.batchSize = size
	}
}

func (m *Migrator) UseMongo(client *mongo.Client, dbName string) {
	if client != nil && dbName != "" {
		m.mongoDB = client.Database(dbName)
	}
}

// SetMongoCollectionName overrides the collection name for a given kind
// (e.g., "cards").
func (m *Migrator) SetMongoCollectionName(kind, name string) {
	if m.collNames == nil {
		m.collNames = map[string]string{}
	}
	if kind != "" && name != "" {
		m.collNames[kind] = name
	}
}

func (m *Migrator) getColl(kind, defaultName string) *mongo.Collection {
	if m.mongoDB == nil {
		return nil
	}
	name := defaultName
	if v, ok := m.collNames[kind]; ok && v != "" {
		name = v
	}
	return m.mongoDB.Collection(name)
}

// ImportCardPool imports the legacy catalog into the active template for
// packType. Live Mongo is preferred when configured; the JSON export is the
// fallback. Cards already in the pool (by name) are skipped.
func (m *Migrator) ImportCardPool(ctx context.Context, packType models.PackType) error {
	logProgress(fmt.Sprintf("Starting card pool import for pack type %q", packType))

	var (
		incoming []models.CardDefinition
		err      error
	)
	if m.mongoDB != nil {
		incoming, err = m.readCardsFromMongo(ctx)
	} else {
		incoming, err = m.readCardsFromJSON()
	}
	if err != nil {
		return err
	}
	if len(incoming) == 0 {
		logProgress("Legacy catalog yielded no usable cards; nothing to import")
		return nil
	}

	added, err := m.mergeIntoTemplate(ctx, packType, incoming)
	if err != nil {
		return err
	}

	logProgress(fmt.Sprintf("Import complete: %d cards read, %d added to pool", len(incoming), added))
	m.logFinalStats()
	return nil
}

func (m *Migrator) readCardsFromMongo(ctx context.Context) ([]models.CardDefinition, error) {
	st := m.stats.step("cards_mongo")
	col := m.getColl("cards", "cards")
	cur, err := col.Find(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("query legacy cards collection: %w", err)
	}
	defer cur.Close(ctx)

	var out []models.CardDefinition
	for cur.Next(ctx) {
		var mc MongoCard
		if err := cur.Decode(&mc); err != nil {
			st.Skipped++
			continue
		}
		st.Read++
		def, err := m.convertMongoCard(mc)
		if err != nil {
			logProgress(fmt.Sprintf("Skipping malformed card: %v", err))
			st.Skipped++
			continue
		}
		out = append(out, def)
	}
	if err := cur.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (m *Migrator) readCardsFromJSON() ([]models.CardDefinition, error) {
	st := m.stats.step("cards_json")
	path := filepath.Join(m.dataDir, "cards.json")
	logProgress(fmt.Sprintf("Reading %s...", path))

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read legacy export: %w", err)
	}
	var jsonCards []JSONCard
	if err := json.Unmarshal(data, &jsonCards); err != nil {
		return nil, fmt.Errorf("parse legacy export: %w", err)
	}

	out := make([]models.CardDefinition, 0, len(jsonCards))
	for _, jc := range jsonCards {
		st.Read++
		def, err := m.convertJSONCard(jc)
		if err != nil {
			logProgress(fmt.Sprintf("Skipping malformed card: %v", err))
			st.Skipped++
			continue
		}
		out = append(out, def)
	}
	return out, nil
}

func (m *Migrator) mergeIntoTemplate(ctx context.Context, packType models.PackType, incoming []models.CardDefinition) (int, error) {
	st := m.stats.step("template_merge")

	return addedResult(st, m.pgDB.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		template := new(models.CardPackTemplate)
		err := tx.NewSelect().
			Model(template).
			Where("tpl.type = ?", packType).
			Where("tpl.active = TRUE").
			For("UPDATE").
			Scan(ctx)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return fmt.Errorf("no active template for pack type %q; bootstrap it first", packType)
			}
			return err
		}

		merged, added := mergePool(template.CardPool, incoming)
		st.Imported = added
		if added == 0 {
			logProgress("All legacy cards already present in pool")
			return nil
		}

		template.CardPool = merged
		template.UpdatedAt = time.Now()
		_, err = tx.NewUpdate().
			Model(template).
			Column("card_pool", "updated_at").
			WherePK().
			Exec(ctx)
		return err
	}))
}

func addedResult(st *TableStats, err error) (int, error) {
	if err != nil {
		return 0, err
	}
	return st.Imported, nil
}

func (m *Migrator) logFinalStats() {
	for name, st := range m.stats.Steps {
		logProgress(fmt.Sprintf("  %s: read=%d imported=%d skipped=%d", name, st.Read, st.Imported, st.Skipped))
	}
}

func logProgress(message string) {
	timestamp := time.Now().Format("15:04:05")
	fmt.Printf("[%s] %s\n", timestamp, message)
}
