package sqlite

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mcoot/elotrack/internal/model"
	"github.com/mcoot/elotrack/internal/storage"
)

// PlayerRecord is a row of the players table
type PlayerRecord struct {
	Ordinal int32  `gorm:"primaryKey;autoIncrement:false"`
	Name    string `gorm:"not null;uniqueIndex"`
	Rating  float64
}

// SetRecord is a row of the match_sets table. Seq is the recording position.
type SetRecord struct {
	Seq     int32 `gorm:"primaryKey;autoIncrement:false"`
	PlayerA int32 `gorm:"not null"`
	PlayerB int32 `gorm:"not null"`
	WinsA   int32
	WinsB   int32
	Date    string `gorm:"size:10"`
}

// Meta holds the scalar set count
type Meta struct {
	ID      uint `gorm:"primaryKey"`
	TotSets int32
}

func (PlayerRecord) TableName() string { return "players" }
func (SetRecord) TableName() string    { return "match_sets" }
func (Meta) TableName() string         { return "meta" }

// Storage keeps the ladder in a SQLite database through gorm
type Storage struct {
	db *gorm.DB
}

// New opens the database at path and migrates the schema
func New(path string) (*Storage, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, errors.Wrapf(err, "unable to open %s", path)
	}

	if err := db.AutoMigrate(&PlayerRecord{}, &SetRecord{}, &Meta{}); err != nil {
		return nil, errors.Wrap(err, "unable to migrate schema")
	}

	return &Storage{db: db}, nil
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

func (s *Storage) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return errors.Wrap(err, "unable to get database handle")
	}
	return errors.Wrap(sqlDB.Close(), "unable to close database")
}

func (s *Storage) Load(ctx context.Context) (*model.Snapshot, error) {
	db := s.db.WithContext(ctx)

	var meta Meta
	err := db.First(&meta).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, model.ErrStateNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "unable to read meta")
	}

	var players []PlayerRecord
	if err := db.Order("ordinal").Find(&players).Error; err != nil {
		return nil, errors.Wrap(err, "unable to read players")
	}

	var sets []SetRecord
	if err := db.Order("seq").Find(&sets).Error; err != nil {
		return nil, errors.Wrap(err, "unable to read sets")
	}

	snap := &model.Snapshot{TotalSets: meta.TotSets}
	for _, p := range players {
		snap.Players = append(snap.Players, model.PlayerRow{Name: p.Name, Rating: p.Rating, Ordinal: p.Ordinal})
	}
	for _, r := range sets {
		snap.Sets = append(snap.Sets, model.SetRow{
			PlayerA: r.PlayerA,
			PlayerB: r.PlayerB,
			WinsA:   r.WinsA,
			WinsB:   r.WinsB,
			Date:    r.Date,
		})
	}
	return snap, nil
}

// Save replaces every table inside one transaction
func (s *Storage) Save(ctx context.Context, snap *model.Snapshot) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		all := tx.Session(&gorm.Session{AllowGlobalUpdate: true})
		for _, table := range []any{&PlayerRecord{}, &SetRecord{}, &Meta{}} {
			if err := all.Delete(table).Error; err != nil {
				return errors.Wrap(err, "unable to clear table")
			}
		}

		if len(snap.Players) > 0 {
			players := make([]PlayerRecord, 0, len(snap.Players))
			for _, p := range snap.Players {
				players = append(players, PlayerRecord{Ordinal: p.Ordinal, Name: p.Name, Rating: p.Rating})
			}
			if err := tx.Create(&players).Error; err != nil {
				return errors.Wrap(err, "unable to insert players")
			}
		}

		if len(snap.Sets) > 0 {
			sets := make([]SetRecord, 0, len(snap.Sets))
			for i, r := range snap.Sets {
				sets = append(sets, SetRecord{
					Seq:     int32(i),
					PlayerA: r.PlayerA,
					PlayerB: r.PlayerB,
					WinsA:   r.WinsA,
					WinsB:   r.WinsB,
					Date:    r.Date,
				})
			}
			if err := tx.Create(&sets).Error; err != nil {
				return errors.Wrap(err, "unable to insert sets")
			}
		}

		return errors.Wrap(tx.Create(&Meta{ID: 1, TotSets: snap.TotalSets}).Error, "unable to write meta")
	})

	return errors.Wrap(err, "unable to save snapshot")
}
