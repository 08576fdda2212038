package codec

import (
	"fmt"

	"github.com/koskimas/msggen/internal/hash"
	"github.com/koskimas/msggen/internal/model"
	"github.com/koskimas/msggen/internal/plan"
	"github.com/koskimas/msggen/wire"
)

// Record is a dynamically typed message instance keyed by member name.
//
// Scalars hold int8, int16, int32, int64, uint8, float32, float64, string or
// bool; nested structs hold a Record. Arrays are []any for every dimension
// but the last one, which is a typed slice such as []int32, []string or
// []Record.
type Record map[string]any

// Codec encodes and decodes records by executing the codec plans of a
// catalog.
type Codec struct {
	catalog *model.Catalog
	plans   map[string]*plan.Plan
}

// New hashes every struct of the catalog and builds their plans. The catalog
// must be valid.
func New(cat *model.Catalog) (*Codec, error) {
	if err := hash.New(cat).All(); err != nil {
		return nil, err
	}

	c := &Codec{
		catalog: cat,
		plans:   make(map[string]*plan.Plan, len(cat.Structs)),
	}

	for _, s := range cat.Structs {
		p, err := plan.Build(s)
		if err != nil {
			return nil, err
		}

		c.plans[s.FullName()] = p
	}

	return c, nil
}

// Plan returns the plan of the struct with the given full name.
func (c *Codec) Plan(name string) (*plan.Plan, error) {
	p, ok := c.plans[name]
	if !ok {
		return nil, fmt.Errorf(`unknown struct "%s"`, name)
	}

	return p, nil
}

// Encode encodes a complete message: the fingerprint followed by the
// members of `r`.
func (c *Codec) Encode(name string, r Record) ([]byte, error) {
	p, err := c.Plan(name)
	if err != nil {
		return nil, err
	}

	return wire.Marshal(p.Fingerprint, func(w *wire.Writer) error {
		return c.encodeOne(w, p, r)
	})
}

// EncodeOne writes the members of `r` without a fingerprint.
func (c *Codec) EncodeOne(w *wire.Writer, name string, r Record) error {
	p, err := c.Plan(name)
	if err != nil {
		return err
	}

	return c.encodeOne(w, p, r)
}

// Decode decodes a complete message. The fingerprint is checked before
// anything else is read and no record is returned on any error.
func (c *Codec) Decode(name string, data []byte) (Record, error) {
	p, err := c.Plan(name)
	if err != nil {
		return nil, err
	}

	var r Record
	err = wire.Unmarshal(data, p.Fingerprint, func(rd *wire.Reader) error {
		var err error
		r, err = c.decodeOne(rd, p)
		return err
	})

	if err != nil {
		return nil, err
	}

	return r, nil
}

// DecodeOne reads the members of a struct without a fingerprint.
func (c *Codec) DecodeOne(rd *wire.Reader, name string) (Record, error) {
	p, err := c.Plan(name)
	if err != nil {
		return nil, err
	}

	return c.decodeOne(rd, p)
}

// ValueError is returned when a record holds a value of the wrong type.
type ValueError struct {
	Path     string
	Expected string
	Got      any
}

func (e *ValueError) Error() string {
	return fmt.Sprintf(`member "%s": expected %s, got %T`, e.Path, e.Expected, e.Got)
}
