// Package catalog persists computed ball and boundary counts in a badger
// key/value store, so that large radii are counted once per machine.
package catalog

import (
	"bytes"
	"encoding/binary"
	"math/big"

	"github.com/dgraph-io/badger/v4"
	"github.com/pkg/errors"
	"github.com/plan-systems/klog"

	"github.com/katalvlaran/crystal/lattice"
)

var (
	// ErrNoPath is returned by Open without a path for an on-disk catalog.
	ErrNoPath = errors.New("catalog: path required unless in memory")

	// ErrBadKey is returned when a stored key cannot be decoded.
	ErrBadKey = errors.New("catalog: malformed key")

	// ErrNegativeCount is returned by Put for a negative count.
	ErrNegativeCount = errors.New("catalog: counts are never negative")
)

// Kind names what a count measures.
type Kind byte

const (
	Ball     Kind = 'B'
	Boundary Kind = 'S'
)

func (k Kind) String() string {
	switch k {
	case Ball:
		return "ball"
	case Boundary:
		return "boundary"
	}
	return "kind(" + string(rune(k)) + ")"
}

// countPrefix leads every count key.
var countPrefix = []byte{0x00, 'c'}

const keyLen = 2 + 3 + 4

// Key identifies one count.
type Key struct {
	Kind      Kind
	Degree    int
	Variation lattice.Variation
	Radius    int
}

// Bytes encodes k so that keys sort by kind, degree, variation, then radius.
func (k Key) Bytes() []byte {
	b := make([]byte, 0, keyLen)
	b = append(b, countPrefix...)
	b = append(b, byte(k.Kind), byte(k.Degree), byte(k.Variation))
	return binary.BigEndian.AppendUint32(b, uint32(k.Radius))
}

// ParseKey decodes a key written by Key.Bytes.
func ParseKey(b []byte) (Key, error) {
	if len(b) != keyLen || !bytes.HasPrefix(b, countPrefix) {
		return Key{}, errors.Wrapf(ErrBadKey, "%x", b)
	}
	return Key{
		Kind:      Kind(b[2]),
		Degree:    int(b[3]),
		Variation: lattice.Variation(b[4]),
		Radius:    int(binary.BigEndian.Uint32(b[5:])),
	}, nil
}

// Options selects where the catalog lives.
type Options struct {
	// Path is the badger directory; ignored when InMemory is set.
	Path     string
	InMemory bool
	ReadOnly bool
}

// Catalog is a badger-backed count store. It is safe for concurrent use.
type Catalog struct {
	db *badger.DB
}

// Open opens (or creates) the catalog.
func Open(opts Options) (*Catalog, error) {
	var dbOpts badger.Options
	switch {
	case opts.InMemory:
		dbOpts = badger.DefaultOptions("").WithInMemory(true)
	case opts.Path == "":
		return nil, ErrNoPath
	default:
		dbOpts = badger.DefaultOptions(opts.Path).WithReadOnly(opts.ReadOnly)
	}
	dbOpts.Logger = klogAdapter{}
	dbOpts.MetricsEnabled = false
	dbOpts.DetectConflicts = false

	db, err := badger.Open(dbOpts)
	if err != nil {
		return nil, errors.Wrapf(err, "catalog: opening %q", opts.Path)
	}
	klog.V(1).Infof("catalog: opened %q (in memory: %v)", opts.Path, opts.InMemory)
	return &Catalog{db: db}, nil
}

// Close releases the store.
func (c *Catalog) Close() error {
	return errors.Wrap(c.db.Close(), "catalog: close")
}

// Get returns the stored count, if any.
func (c *Catalog) Get(k Key) (*big.Int, bool, error) {
	var out *big.Int
	err := c.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(k.Bytes())
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			out = new(big.Int).SetBytes(val)
			return nil
		})
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, errors.Wrapf(err, "catalog: get %v", k)
	}
	return out, true, nil
}

// Put stores a count.
func (c *Catalog) Put(k Key, v *big.Int) error {
	if v.Sign() < 0 {
		return errors.Wrapf(ErrNegativeCount, "%v = %v", k, v)
	}
	err := c.db.Update(func(txn *badger.Txn) error {
		return txn.Set(k.Bytes(), v.Bytes())
	})
	return errors.Wrapf(err, "catalog: put %v", k)
}

// Lookup returns the stored count or computes, stores and returns it.
func (c *Catalog) Lookup(k Key, compute func() (*big.Int, error)) (*big.Int, error) {
	if v, ok, err := c.Get(k); err != nil || ok {
		if ok {
			klog.V(2).Infof("catalog: hit %v", k)
		}
		return v, err
	}
	v, err := compute()
	if err != nil {
		return nil, err
	}
	if err = c.Put(k, v); err != nil {
		klog.Warningf("catalog: not storing %v: %v", k, err)
	}
	return v, nil
}

// Each calls fn for every stored count in key order. An error from fn stops
// the iteration and is returned.
func (c *Catalog) Each(fn func(Key, *big.Int) error) error {
	return c.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.IteratorOptions{Prefix: countPrefix, PrefetchValues: true, PrefetchSize: 64})
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			item := it.Item()
			k, err := ParseKey(item.KeyCopy(nil))
			if err != nil {
				return err
			}
			val, err := item.ValueCopy(nil)
			if err != nil {
				return errors.Wrapf(err, "catalog: reading %v", k)
			}
			if err = fn(k, new(big.Int).SetBytes(val)); err != nil {
				return err
			}
		}
		return nil
	})
}

// BallCount answers l.BallCount through the catalog.
func (c *Catalog) BallCount(l *lattice.Lattice, radius int) (*big.Int, error) {
	k := Key{Kind: Ball, Degree: l.Degree(), Variation: l.Variation(), Radius: radius}
	return c.Lookup(k, func() (*big.Int, error) { return l.BallCount(radius) })
}

// BoundaryCount answers l.BoundaryCount through the catalog.
func (c *Catalog) BoundaryCount(l *lattice.Lattice, radius int) (*big.Int, error) {
	k := Key{Kind: Boundary, Degree: l.Degree(), Variation: l.Variation(), Radius: radius}
	return c.Lookup(k, func() (*big.Int, error) { return l.BoundaryCount(radius) })
}

// klogAdapter routes badger's logging to klog.
type klogAdapter struct{}

func (klogAdapter) Errorf(format string, args ...interface{})   { klog.Errorf("badger: "+format, args...) }
func (klogAdapter) Warningf(format string, args ...interface{}) { klog.Warningf("badger: "+format, args...) }
func (klogAdapter) Infof(format string, args ...interface{})    { klog.V(2).Infof("badger: "+format, args...) }
func (klogAdapter) Debugf(format string, args ...interface{})   { klog.V(4).Infof("badger: "+format, args...) }
