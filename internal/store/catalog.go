package store

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/hamcat/rigmap/pkg/catalogs"
	"github.com/hamcat/rigmap/pkg/constants"
	"github.com/hamcat/rigmap/pkg/errors"
	"github.com/hamcat/rigmap/pkg/logging"
	"github.com/hamcat/rigmap/pkg/reconcile"
)

// Mutation changes the in-memory catalog it is given and reports the
// records it superseded. The catalog's final state is what gets written.
type Mutation func(ctx context.Context, cat catalogs.Catalog) (*reconcile.Result, error)

// Load reads the whole catalog. Radios come back in insertion order.
func (s *Store) Load(ctx context.Context) (catalogs.Catalog, error) {
	return load(s.db.WithContext(ctx))
}

func load(db *gorm.DB) (catalogs.Catalog, error) {
	var radioRows []RadioModel
	if err := db.Order("id").Find(&radioRows).Error; err != nil {
		return nil, errors.WrapResource("load", "radios", "", err)
	}
	var brandRows []BrandModel
	if err := db.Order("name").Find(&brandRows).Error; err != nil {
		return nil, errors.WrapResource("load", "brands", "", err)
	}

	radios := make([]catalogs.Radio, len(radioRows))
	for i, m := range radioRows {
		radios[i] = m.toRadio()
	}
	brands := make([]catalogs.Brand, len(brandRows))
	for i, m := range brandRows {
		brands[i] = m.toBrand()
	}
	return catalogs.New(catalogs.WithRadios(radios...), catalogs.WithBrands(brands...)), nil
}

// Apply runs m against the stored catalog inside one transaction and
// writes the outcome. Nothing is written when m fails.
func (s *Store) Apply(ctx context.Context, m Mutation) (*reconcile.Result, error) {
	logger := logging.FromContext(ctx)
	var result *reconcile.Result

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		cat, err := load(tx)
		if err != nil {
			return err
		}
		res, err := m(ctx, cat)
		if err != nil {
			return err
		}
		if err := reconcile.Validate(cat.Radios().List()); err != nil {
			return err
		}
		if err := write(tx, cat); err != nil {
			return err
		}
		result = res
		return nil
	})
	if err != nil {
		logger.Warn().Err(err).Msg("Rolled back catalog transaction")
		return nil, err
	}
	return result, nil
}

// write makes the tables match cat. Rows whose IDs are no longer in cat
// (superseded or removed) are deleted first so their keys are free, then
// existing rows are updated and new ones inserted.
func write(tx *gorm.DB, cat catalogs.Reader) error {
	radios := cat.Radios().List()
	keep := make([]uint, 0, len(radios))
	for _, r := range radios {
		if r.ID != 0 {
			keep = append(keep, r.ID)
		}
	}

	stale := tx.Model(&RadioModel{})
	if len(keep) > 0 {
		stale = stale.Where("id NOT IN ?", keep)
	} else {
		stale = stale.Where("1 = 1")
	}
	if err := stale.Delete(&RadioModel{}).Error; err != nil {
		return errors.WrapResource("delete", "radios", "", err)
	}

	var inserts []RadioModel
	for _, r := range radios {
		m := fromRadio(r)
		if m.ID == 0 {
			inserts = append(inserts, m)
			continue
		}
		err := tx.Model(&RadioModel{ID: m.ID}).Select("*").Omit("id", "created_at").Updates(&m).Error
		if err != nil {
			return errors.WrapResource("update", "radio", m.Key, err)
		}
	}

	if len(inserts) > 0 {
		err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "radio_key"}},
			DoUpdates: clause.AssignmentColumns(radioColumns),
		}).CreateInBatches(inserts, constants.UpsertBatchSize).Error
		if err != nil {
			return errors.WrapResource("insert", "radios", "", err)
		}
	}

	return writeBrands(tx, cat.Brands().List())
}

func writeBrands(tx *gorm.DB, brands []catalogs.Brand) error {
	names := make([]string, 0, len(brands))
	for _, b := range brands {
		names = append(names, b.Name)
	}

	stale := tx.Model(&BrandModel{})
	if len(names) > 0 {
		stale = stale.Where("name NOT IN ?", names)
	} else {
		stale = stale.Where("1 = 1")
	}
	if err := stale.Delete(&BrandModel{}).Error; err != nil {
		return errors.WrapResource("delete", "brands", "", err)
	}
	if len(brands) == 0 {
		return nil
	}

	rows := make([]BrandModel, len(brands))
	for i, b := range brands {
		rows[i] = fromBrand(b)
	}
	err := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoUpdates: clause.AssignmentColumns(brandColumns),
	}).CreateInBatches(rows, constants.UpsertBatchSize).Error
	if err != nil {
		return errors.WrapResource("upsert", "brands", "", err)
	}
	return nil
}
