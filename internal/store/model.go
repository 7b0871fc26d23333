package store

import (
	"time"

	"github.com/hamcat/rigmap/pkg/catalogs"
	"github.com/hamcat/rigmap/pkg/types"
)

// RadioModel is the radios table. Key holds the normalized "Brand/MODEL"
// identity so the database enforces one row per key.
type RadioModel struct {
	ID                  uint   `gorm:"primaryKey"`
	Key                 string `gorm:"column:radio_key;size:330;not null;uniqueIndex"`
	Brand               string `gorm:"size:200;not null;index"`
	Model               string `gorm:"size:128;not null"`
	FCCID               string `gorm:"column:fcc_id;size:50"`
	IntroYear           *int
	FreqBandsTX         string `gorm:"column:freq_bands_tx;size:200"`
	PowerWatts          string `gorm:"size:100"`
	SatelliteTracking   string `gorm:"size:50"`
	HarmonicSuppression string `gorm:"size:100"`
	GPS                 string `gorm:"column:gps;size:50"`
	APRS                string `gorm:"column:aprs;size:100"`
	AirBand             string `gorm:"size:50"`
	DMR                 string `gorm:"column:dmr;size:50"`
	Display             string `gorm:"size:200"`
	BatteryMAH          *int   `gorm:"column:battery_mah"`
	CostApprox          string `gorm:"size:100"`
	RebadgesClones      string `gorm:"type:text"`
	Website             string `gorm:"size:500"`
	Notes               string `gorm:"type:text"`
	Source              string `gorm:"size:32"`
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// TableName pins the table name.
func (RadioModel) TableName() string { return "radios" }

// BrandModel is the brands table.
type BrandModel struct {
	ID          uint   `gorm:"primaryKey"`
	Name        string `gorm:"size:200;not null;uniqueIndex"`
	GranteeCode string `gorm:"size:20;index"`
	FullName    string `gorm:"size:500"`
	Website     string `gorm:"size:500"`
	Country     string `gorm:"size:100"`
	Notes       string `gorm:"type:text"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName pins the table name.
func (BrandModel) TableName() string { return "brands" }

// radioColumns are the columns an upsert overwrites on conflict.
var radioColumns = []string{
	"brand", "model", "fcc_id", "intro_year", "freq_bands_tx", "power_watts",
	"satellite_tracking", "harmonic_suppression", "gps", "aprs", "air_band",
	"dmr", "display", "battery_mah", "cost_approx", "rebadges_clones",
	"website", "notes", "source", "updated_at",
}

var brandColumns = []string{"grantee_code", "full_name", "website", "country", "notes", "updated_at"}

func fromRadio(r catalogs.Radio) RadioModel {
	r = catalogs.DeepCopyRadio(r)
	return RadioModel{
		ID:                  r.ID,
		Key:                 r.Key().String(),
		Brand:               r.Brand,
		Model:               r.Model,
		FCCID:               r.FCCID,
		IntroYear:           r.IntroYear,
		FreqBandsTX:         r.FreqBandsTX,
		PowerWatts:          r.PowerWatts,
		SatelliteTracking:   r.SatelliteTracking,
		HarmonicSuppression: r.HarmonicSuppression,
		GPS:                 r.GPS,
		APRS:                r.APRS,
		AirBand:             r.AirBand,
		DMR:                 r.DMR,
		Display:             r.Display,
		BatteryMAH:          r.BatteryMAH,
		CostApprox:          r.CostApprox,
		RebadgesClones:      r.RebadgesClones,
		Website:             r.Website,
		Notes:               r.Notes,
		Source:              string(r.Source),
	}
}

// toRadio converts a row. Loaded radios are attributed to the store.
func (m RadioModel) toRadio() catalogs.Radio {
	return catalogs.DeepCopyRadio(catalogs.Radio{
		ID:                  m.ID,
		Brand:               m.Brand,
		Model:               m.Model,
		FCCID:               m.FCCID,
		IntroYear:           m.IntroYear,
		FreqBandsTX:         m.FreqBandsTX,
		PowerWatts:          m.PowerWatts,
		SatelliteTracking:   m.SatelliteTracking,
		HarmonicSuppression: m.HarmonicSuppression,
		GPS:                 m.GPS,
		APRS:                m.APRS,
		AirBand:             m.AirBand,
		DMR:                 m.DMR,
		Display:             m.Display,
		BatteryMAH:          m.BatteryMAH,
		CostApprox:          m.CostApprox,
		RebadgesClones:      m.RebadgesClones,
		Website:             m.Website,
		Notes:               m.Notes,
		Source:              types.StoreID,
	})
}

func fromBrand(b catalogs.Brand) BrandModel {
	return BrandModel{
		Name:        b.Name,
		GranteeCode: b.GranteeCode,
		FullName:    b.FullName,
		Website:     b.Website,
		Country:     b.Country,
		Notes:       b.Notes,
	}
}

func (m BrandModel) toBrand() catalogs.Brand {
	return catalogs.Brand{
		Name:        m.Name,
		GranteeCode: m.GranteeCode,
		FullName:    m.FullName,
		Website:     m.Website,
		Country:     m.Country,
		Notes:       m.Notes,
	}
}
