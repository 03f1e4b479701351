package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/mcdev12/leaguefc/go/internal/dbconfig"
)

// CatalogPlayer is one entry of the EAFC catalog export
type CatalogPlayer struct {
	ID          uuid.UUID       `json:"id"`
	Name        string          `json:"name"`
	Positions   string          `json:"positions"`
	Rating      int             `json:"rating"`
	Nationality string          `json:"nationality"`
	ImageURL    *string         `json:"image_url"`
	Attributes  json.RawMessage `json:"attributes"`
}

var importColumns = []string{"id", "name", "positions", "rating", "nationality", "image_url", "attributes"}

func main() {
	path := flag.String("file", "go/internal/assets/players.json", "catalog JSON file")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Warn().Err(err).Msg("could not load .env file")
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	data, err := os.ReadFile(*path)
	if err != nil {
		log.Fatal().Err(err).Str("file", *path).Msg("read catalog")
	}
	var catalog []CatalogPlayer
	if err := json.Unmarshal(data, &catalog); err != nil {
		log.Fatal().Err(err).Msg("unmarshal catalog")
	}

	rows, rejected := prepareRows(catalog)
	for _, r := range rejected {
		log.Warn().Str("reason", r).Msg("skipping catalog entry")
	}

	ctx := context.Background()
	cfg := dbconfig.NewConfigFromEnv()
	pool, err := pgxpool.New(ctx, cfg.PoolDSN())
	if err != nil {
		log.Fatal().Err(err).Msg("connect to database")
	}
	defer pool.Close()

	inserted, err := importPlayers(ctx, pool, rows)
	if err != nil {
		log.Fatal().Err(err).Msg("import players")
	}

	log.Info().
		Int("total", len(catalog)).
		Int64("inserted", inserted).
		Int64("skipped", int64(len(rows))-inserted).
		Int("rejected", len(rejected)).
		Msg("players seed complete")
}

// prepareRows normalises catalog entries into copy rows. Entries the players
// table would reject are reported instead.
func prepareRows(catalog []CatalogPlayer) ([][]any, []string) {
	rows := make([][]any, 0, len(catalog))
	var rejected []string
	seen := make(map[uuid.UUID]bool, len(catalog))

	for i, p := range catalog {
		name := strings.TrimSpace(p.Name)
		positions := strings.ToUpper(strings.ReplaceAll(p.Positions, " ", ""))
		switch {
		case name == "":
			rejected = append(rejected, fmt.Sprintf("entry %d: missing name", i))
			continue
		case positions == "":
			rejected = append(rejected, fmt.Sprintf("entry %d (%s): missing positions", i, name))
			continue
		case p.Rating < 40 || p.Rating > 99:
			rejected = append(rejected, fmt.Sprintf("entry %d (%s): rating %d out of range", i, name, p.Rating))
			continue
		}

		id := p.ID
		if id == uuid.Nil {
			id = uuid.NewSHA1(uuid.NameSpaceOID, []byte(name+"|"+positions))
		}
		if seen[id] {
			rejected = append(rejected, fmt.Sprintf("entry %d (%s): duplicate id", i, name))
			continue
		}
		seen[id] = true

		var attrs []byte
		if len(p.Attributes) > 0 && string(p.Attributes) != "null" {
			attrs = p.Attributes
		}
		rows = append(rows, []any{id, name, positions, p.Rating, p.Nationality, p.ImageURL, attrs})
	}
	return rows, rejected
}

// importPlayers copies rows into a staging table and inserts the ones whose
// id is not already in the catalog
func importPlayers(ctx context.Context, pool *pgxpool.Pool, rows [][]any) (int64, error) {
	tx, err := pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `
        CREATE TEMP TABLE players_import (LIKE players INCLUDING DEFAULTS) ON COMMIT DROP
    `); err != nil {
		return 0, fmt.Errorf("create staging table: %w", err)
	}

	copied, err := tx.CopyFrom(ctx, pgx.Identifier{"players_import"}, importColumns, pgx.CopyFromRows(rows))
	if err != nil {
		return 0, fmt.Errorf("copy rows: %w", err)
	}
	log.Info().Int64("rows", copied).Msg("staged catalog rows")

	tag, err := tx.Exec(ctx, `
        INSERT INTO players (id, name, positions, rating, nationality, image_url, attributes)
        SELECT id, name, positions, rating, nationality, image_url, attributes
        FROM players_import
        ON CONFLICT (id) DO NOTHING
    `)
	if err != nil {
		return 0, fmt.Errorf("insert players: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}
	return tag.RowsAffected(), nil
}
