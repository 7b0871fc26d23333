package grantee

import (
	"os"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/hamcat/rigmap/internal/embedded"
	"github.com/hamcat/rigmap/pkg/errors"
)

// Entry maps one brand spelling to a grantee code.
type Entry struct {
	Brand    string `yaml:"brand" json:"brand"`
	Code     string `yaml:"code" json:"code"`
	FullName string `yaml:"full_name,omitempty" json:"full_name,omitempty"`
}

// Curated is the hand-maintained grantee table.
type Curated struct {
	Grantees    []Entry  `yaml:"grantees"`
	NoFCCBrands []string `yaml:"no_fcc_brands,omitempty"`
}

// Validate checks every entry carries both a brand and a code.
func (c *Curated) Validate() error {
	for i, e := range c.Grantees {
		if strings.TrimSpace(e.Brand) == "" {
			return &errors.ValidationError{Field: "grantees.brand", Value: i, Message: "cannot be empty"}
		}
		if strings.TrimSpace(e.Code) == "" {
			return &errors.ValidationError{Field: "grantees.code", Value: e.Brand, Message: "cannot be empty"}
		}
	}
	return nil
}

// Decode parses a curated table from YAML.
func Decode(data []byte) (*Curated, error) {
	var c Curated
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, errors.WrapParse("yaml", "", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// LoadFile reads a curated table from a YAML file.
func LoadFile(path string) (*Curated, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapIO("read", path, err)
	}
	c, err := Decode(data)
	if err != nil {
		return nil, errors.WrapParse("yaml", path, err)
	}
	return c, nil
}

// DefaultCurated returns the table compiled into the binary.
func DefaultCurated() (*Curated, error) {
	return Decode(embedded.Grantees)
}
