package fits

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/robert-malhotra/go-fits/internal/binary"
	"github.com/robert-malhotra/go-fits/internal/stats"
)

// Statistics summarises the samples of one unit.
type Statistics = stats.Summary

// File is a FITS file held in memory, split into its Header/Data Units.
//
// Unit 0 is the primary HDU; extensions follow in file order. All units are
// located when the file is loaded, so UnitAt is O(1). A File is safe for
// concurrent use.
type File struct {
	units    []*Unit
	observer Observer

	imagesOnce sync.Once
	images     []*Unit

	mu    sync.Mutex
	stats map[int]*statsCell
}

// statsCell holds the statistics of one unit, computed at most once.
type statsCell struct {
	once    sync.Once
	summary Statistics
	err     error
}

// Load parses every unit in data. The slice is retained and must not be
// modified afterwards.
func Load(data []byte, opts ...Option) (*File, error) {
	o := buildOptions(opts)

	f := &File{
		observer: o.observer,
		stats:    make(map[int]*statsCell),
	}

	u, err := newUnit(binary.NewView(data), 0)
	for ; u != nil && err == nil; u, err = u.successor() {
		f.units = append(f.units, u)
	}
	if err != nil {
		return nil, err
	}

	if f.observer != nil {
		f.observer.UnitsScanned(len(f.units))
	}
	return f, nil
}

// Open reads and parses a local file.
func Open(path string, opts ...Option) (*File, error) {
	return OpenURI(context.Background(), path, opts...)
}

// OpenURI loads uri through the configured byte source and parses it.
// Local paths, file://, s3:// and gs:// URIs are understood by default.
// gzip, zstd and lz4 compressed files are inflated transparently.
func OpenURI(ctx context.Context, uri string, opts ...Option) (*File, error) {
	o := buildOptions(opts)
	data, err := o.router().Load(ctx, uri)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", uri, err)
	}
	return Load(data, opts...)
}

// Len returns the number of units, primary included.
func (f *File) Len() int {
	return len(f.units)
}

// Units returns all units in file order.
func (f *File) Units() []*Unit {
	out := make([]*Unit, len(f.units))
	copy(out, f.units)
	return out
}

// Primary returns the primary HDU.
func (f *File) Primary() *Unit {
	return f.units[0]
}

// UnitAt returns the unit at index.
func (f *File) UnitAt(index int) (*Unit, error) {
	if index < 0 || index >= len(f.units) {
		return nil, fmt.Errorf("%w: %d (file has %d units)", ErrIndexOutOfRange, index, len(f.units))
	}
	return f.units[index], nil
}

// ImageUnits returns the units whose XTENSION names an image extension. The
// primary HDU has no XTENSION and is never included.
func (f *File) ImageUnits() []*Unit {
	f.imagesOnce.Do(func() {
		for _, u := range f.units {
			if u.IsImageExtension() {
				f.images = append(f.images, u)
			}
		}
	})
	return slices.Clone(f.images)
}

// LayerStatistics decodes unit index and summarises its samples. The result
// (or error) is computed once per index and reused until
// InvalidateStatistics is called.
func (f *File) LayerStatistics(index int) (Statistics, error) {
	u, err := f.UnitAt(index)
	if err != nil {
		return Statistics{}, err
	}

	f.mu.Lock()
	cell, ok := f.stats[index]
	if !ok {
		cell = &statsCell{}
		f.stats[index] = cell
	}
	f.mu.Unlock()

	cell.once.Do(func() {
		start := time.Now()
		cell.summary, cell.err = layerStatistics(u)
		if f.observer != nil {
			f.observer.LayerComputed(index, time.Since(start), cell.err)
		}
	})
	return cell.summary, cell.err
}

func layerStatistics(u *Unit) (Statistics, error) {
	samples, err := u.Samples()
	if err != nil {
		return Statistics{}, err
	}
	s, err := stats.Compute(samples)
	if err != nil {
		return Statistics{}, fmt.Errorf("unit %d: %w", u.Index(), err)
	}
	return s, nil
}

// InvalidateStatistics drops the memoized statistics for index so the next
// LayerStatistics call recomputes them.
func (f *File) InvalidateStatistics(index int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.stats, index)
}
