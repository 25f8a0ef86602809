package catalog

import (
	"bytes"
	"compress/gzip"
	"context"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"math"
	"math/big"
	"net/http"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/Lixing-Zhang/vending-machine/internal/models"
	"github.com/Lixing-Zhang/vending-machine/internal/repository"
	"github.com/shopspring/decimal"
	"howett.net/plist"
)

// EmbeddedSource selects the inventory bundled with the binary
const EmbeddedSource = "embedded"

//go:embed VendingInventory.plist
var defaultInventory []byte

// MaxCatalogSize caps a catalog document, before and after decompression
const MaxCatalogSize = 1 << 20

var gzipMagic = []byte{0x1f, 0x8b}

// Loader builds inventory repositories from property list documents.
//
// A document is a dictionary keyed by selection name whose values are
// dictionaries with numeric "price" and "quantity" entries. XML, binary,
// OpenStep and GNUstep encodings are accepted, optionally gzip compressed.
type Loader struct {
	client *http.Client
}

// NewLoader creates a loader; a nil client gets a default with a timeout
func NewLoader(client *http.Client) *Loader {
	if client == nil {
		client = &http.Client{
			Timeout: 30 * time.Second,
		}
	}
	return &Loader{
		client: client,
	}
}

// LoadSource loads from a URL, a file path, or the embedded catalog
func (l *Loader) LoadSource(ctx context.Context, source string) (*repository.InMemoryInventoryRepository, error) {
	switch {
	case source == "" || source == EmbeddedSource:
		return l.LoadDefault()
	case strings.HasPrefix(source, "http://"), strings.HasPrefix(source, "https://"):
		return l.LoadURL(ctx, source)
	default:
		return l.LoadFile(source)
	}
}

// LoadDefault loads the catalog bundled with the binary
func (l *Loader) LoadDefault() (*repository.InMemoryInventoryRepository, error) {
	return Parse(defaultInventory)
}

// LoadFile reads and parses the catalog at path
func (l *Loader) LoadFile(path string) (*repository.InMemoryInventoryRepository, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrResourceNotFound, path)
		}
		return nil, fmt.Errorf("%w: failed to read %s: %v", ErrResourceNotFound, path, err)
	}
	return Parse(data)
}

// LoadURL downloads and parses the catalog at url
func (l *Loader) LoadURL(ctx context.Context, url string) (*repository.InMemoryInventoryRepository, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrResourceNotFound, err)
	}

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to download catalog: %v", ErrResourceNotFound, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: unexpected status code: %d", ErrResourceNotFound, resp.StatusCode)
	}

	return Load(resp.Body)
}

// Load reads a catalog document from r
func Load(r io.Reader) (*repository.InMemoryInventoryRepository, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxCatalogSize+1))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read catalog: %v", ErrResourceNotFound, err)
	}
	return Parse(data)
}

// Parse decodes a catalog document. No repository is returned unless every
// entry is valid.
func Parse(data []byte) (*repository.InMemoryInventoryRepository, error) {
	if len(data) > MaxCatalogSize {
		return nil, fmt.Errorf("%w: document exceeds %d bytes", ErrMalformedResource, MaxCatalogSize)
	}

	if bytes.HasPrefix(data, gzipMagic) {
		unzipped, err := gunzip(data)
		if err != nil {
			return nil, err
		}
		data = unzipped
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("%w: empty document", ErrMalformedResource)
	}

	var doc interface{}
	if _, err := plist.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResource, err)
	}

	root, ok := doc.(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("%w: top level must be a dictionary, got %T", ErrMalformedResource, doc)
	}
	if len(root) == 0 {
		return nil, fmt.Errorf("%w: catalog has no entries", ErrMalformedResource)
	}

	keys := make([]string, 0, len(root))
	for key := range root {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	items := make(map[models.Selection]models.Item, len(root))
	for _, key := range keys {
		sel, err := models.ParseSelection(key)
		if err != nil {
			return nil, &UnknownProductKeyError{Key: key}
		}

		item, err := parseItem(root[key])
		if err != nil {
			return nil, fmt.Errorf("%w: entry %q: %v", ErrMalformedResource, key, err)
		}
		items[sel] = item
	}

	return repository.NewInMemoryInventoryRepository(items), nil
}

func parseItem(raw interface{}) (models.Item, error) {
	entry, ok := raw.(map[string]interface{})
	if !ok {
		return models.Item{}, fmt.Errorf("expected dictionary, got %T", raw)
	}

	price, err := field(entry, "price")
	if err != nil {
		return models.Item{}, err
	}
	quantity, err := field(entry, "quantity")
	if err != nil {
		return models.Item{}, err
	}

	return models.Item{Price: price, Quantity: quantity}, nil
}

func field(entry map[string]interface{}, name string) (decimal.Decimal, error) {
	raw, ok := entry[name]
	if !ok {
		return decimal.Zero, fmt.Errorf("missing %s", name)
	}

	var value decimal.Decimal
	switch v := raw.(type) {
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return decimal.Zero, fmt.Errorf("%s must be a finite number", name)
		}
		value = decimal.NewFromFloat(v)
	case float32:
		if math.IsNaN(float64(v)) || math.IsInf(float64(v), 0) {
			return decimal.Zero, fmt.Errorf("%s must be a finite number", name)
		}
		value = decimal.NewFromFloat32(v)
	case int64:
		value = decimal.NewFromInt(v)
	case uint64:
		value = decimal.NewFromBigInt(new(big.Int).SetUint64(v), 0)
	case string:
		// OpenStep documents carry every scalar as a string
		parsed, err := decimal.NewFromString(strings.TrimSpace(v))
		if err != nil {
			return decimal.Zero, fmt.Errorf("%s must be a number, got %q", name, v)
		}
		value = parsed
	default:
		return decimal.Zero, fmt.Errorf("%s must be a number, got %T", name, raw)
	}

	if value.IsNegative() {
		return decimal.Zero, fmt.Errorf("%s must not be negative", name)
	}
	return value, nil
}

func gunzip(data []byte) ([]byte, error) {
	gzReader, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create gzip reader: %v", ErrMalformedResource, err)
	}
	defer gzReader.Close()

	unzipped, err := io.ReadAll(io.LimitReader(gzReader, MaxCatalogSize+1))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to decompress: %v", ErrMalformedResource, err)
	}
	if len(unzipped) > MaxCatalogSize {
		return nil, fmt.Errorf("%w: decompressed document exceeds %d bytes", ErrMalformedResource, MaxCatalogSize)
	}
	return unzipped, nil
}
