package materials

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
	_ "modernc.org/sqlite"

	cerrors "github.com/bibin-skaria/coatingtk/internal/errors"
	"github.com/bibin-skaria/coatingtk/internal/logging"
)

// Catalog is a SQLite-backed store of material definitions, shared between
// coating designs so they do not each carry their own materials list.
type Catalog struct {
	conn   *sqlx.DB
	logger logrus.FieldLogger
}

type catalogRow struct {
	Name      string  `db:"name"`
	N         float64 `db:"n"`
	K         float64 `db:"k"`
	Sellmeier string  `db:"sellmeier_json"`
	Young     float64 `db:"young"`
	Sigma     float64 `db:"sigma"`
	Phi       float64 `db:"phi"`
}

func (r catalogRow) definition() (Definition, error) {
	def := Definition{
		Name:  r.Name,
		N:     r.N,
		K:     r.K,
		Young: r.Young,
		Sigma: r.Sigma,
		Phi:   r.Phi,
	}
	if r.Sellmeier != "" {
		var s Sellmeier
		if err := json.Unmarshal([]byte(r.Sellmeier), &s); err != nil {
			return Definition{}, err
		}
		def.Sellmeier = &s
	}
	return def, nil
}

// OpenCatalog opens or creates a catalog database at path.
func OpenCatalog(path string, logger logrus.FieldLogger) (*Catalog, error) {
	conn, err := sqlx.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, cerrors.NewStorageError("open_catalog", fmt.Sprintf("open %s", path), err)
	}

	c := &Catalog{conn: conn, logger: logging.Component(logger, "catalog")}
	if err := c.migrate(); err != nil {
		conn.Close()
		return nil, cerrors.NewStorageError("open_catalog", "migrate", err)
	}

	return c, nil
}

// Close closes the database connection.
func (c *Catalog) Close() error {
	return c.conn.Close()
}

func (c *Catalog) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS materials (
		name TEXT PRIMARY KEY,
		n REAL NOT NULL,
		k REAL NOT NULL,
		sellmeier_json TEXT NOT NULL,
		young REAL NOT NULL,
		sigma REAL NOT NULL,
		phi REAL NOT NULL
	);
	`
	_, err := c.conn.Exec(schema)
	return err
}

// SaveMaterials upserts the definitions in a single transaction.
func (c *Catalog) SaveMaterials(defs []Definition) error {
	tx, err := c.conn.Beginx()
	if err != nil {
		return cerrors.NewStorageError("save_materials", "begin transaction", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Preparex(`INSERT OR REPLACE INTO materials
		(name, n, k, sellmeier_json, young, sigma, phi)
		VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return cerrors.NewStorageError("save_materials", "prepare insert", err)
	}
	defer stmt.Close()

	for _, def := range defs {
		if _, err := def.Material(); err != nil {
			return err
		}

		sellmeierJSON := ""
		if def.Sellmeier != nil {
			data, err := json.Marshal(def.Sellmeier)
			if err != nil {
				return cerrors.NewStorageError("save_materials", fmt.Sprintf("encode sellmeier for %q", def.Name), err)
			}
			sellmeierJSON = string(data)
		}

		if _, err := stmt.Exec(def.Name, def.N, def.K, sellmeierJSON, def.Young, def.Sigma, def.Phi); err != nil {
			return cerrors.NewStorageError("save_materials", fmt.Sprintf("insert material %q", def.Name), err)
		}
	}

	if err := tx.Commit(); err != nil {
		return cerrors.NewStorageError("save_materials", "commit", err)
	}
	c.logger.WithField("count", len(defs)).Info("Saved materials to catalog")
	return nil
}

// List returns every stored definition ordered by name.
func (c *Catalog) List() ([]Definition, error) {
	var rows []catalogRow
	if err := c.conn.Select(&rows, "SELECT name, n, k, sellmeier_json, young, sigma, phi FROM materials ORDER BY name"); err != nil {
		return nil, cerrors.NewStorageError("list_materials", "select materials", err)
	}

	defs := make([]Definition, 0, len(rows))
	for _, row := range rows {
		def, err := row.definition()
		if err != nil {
			return nil, cerrors.NewStorageError("list_materials", fmt.Sprintf("decode sellmeier for %q", row.Name), err)
		}
		defs = append(defs, def)
	}
	return defs, nil
}

// Get returns the definition stored under name.
func (c *Catalog) Get(name string) (Definition, error) {
	var row catalogRow
	err := c.conn.Get(&row, "SELECT name, n, k, sellmeier_json, young, sigma, phi FROM materials WHERE name = ?", name)
	if errors.Is(err, sql.ErrNoRows) {
		return Definition{}, cerrors.NewLookupError("catalog_get", name)
	}
	if err != nil {
		return Definition{}, cerrors.NewStorageError("catalog_get", fmt.Sprintf("select material %q", name), err)
	}
	def, err := row.definition()
	if err != nil {
		return Definition{}, cerrors.NewStorageError("catalog_get", fmt.Sprintf("decode sellmeier for %q", name), err)
	}
	return def, nil
}

// LoadInto registers every stored material in lib.
func (c *Catalog) LoadInto(lib *Library) error {
	defs, err := c.List()
	if err != nil {
		return err
	}
	return lib.Load(defs)
}
