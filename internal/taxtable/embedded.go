package taxtable

import (
	"embed"
	"fmt"
	"io/fs"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed data/*.yaml
var dataFS embed.FS

var loadEmbedded = sync.OnceValues(func() (map[int]*Year, error) {
	return parseDir(dataFS, "data")
})

func parseDir(fsys fs.FS, dir string) (map[int]*Year, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, err
	}
	years := make(map[int]*Year, len(entries))
	for _, e := range entries {
		b, err := fs.ReadFile(fsys, dir+"/"+e.Name())
		if err != nil {
			return nil, err
		}
		y, err := Parse(b)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", e.Name(), err)
		}
		years[y.Year] = y
	}
	return years, nil
}

// Parse decodes and validates one year of tables in YAML.
func Parse(b []byte) (*Year, error) {
	var raw rawYear
	if err := yaml.Unmarshal(b, &raw); err != nil {
		return nil, err
	}
	return raw.build()
}

// Embedded returns the tables compiled into the binary for a year.
func Embedded(year int) (*Year, error) {
	years, err := loadEmbedded()
	if err != nil {
		return nil, err
	}
	y, ok := years[year]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrYearNotSupported, year)
	}
	return y, nil
}

// MustEmbedded is Embedded for years known to ship with the binary.
func MustEmbedded(year int) *Year {
	y, err := Embedded(year)
	if err != nil {
		panic(err)
	}
	return y
}
