package nlp

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"os"

	jsoniter "github.com/json-iterator/go"
)

//go:embed data/sample_catalog.json
var sampleCatalog []byte

// SampleCatalog returns a fresh copy of the ten-book demo catalog.
func SampleCatalog() []Book {
	books, err := LoadCatalog(bytes.NewReader(sampleCatalog))
	if err != nil {
		panic(fmt.Sprintf("nlp: embedded sample catalog is invalid: %v", err))
	}
	return books
}

func LoadCatalog(r io.Reader) ([]Book, error) {
	var books []Book
	if err := jsoniter.NewDecoder(r).Decode(&books); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	return books, nil
}

func LoadCatalogFile(path string) ([]Book, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog %s: %w", path, err)
	}
	defer f.Close()

	return LoadCatalog(f)
}
