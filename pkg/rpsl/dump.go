package rpsl

import (
	"context"
	"io"
	"log/slog"
	"runtime"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/SichangHe/parse-rpsl-policy/pkg/mpimport/parser"
)

// Options configures ParseDump.
type Options struct {
	// Encoding is the WHATWG label of the dump encoding.
	// Default: "latin1"
	Encoding string

	// Workers is the number of goroutines parsing aut-num objects.
	// Default: runtime.NumCPU()
	Workers int

	// Attributes lists the aut-num attributes to parse.
	// Default: mp-import, import
	Attributes []string

	// Parser is shared by all workers.
	// Default: parser.NewParser()
	Parser *parser.Parser

	// Logger receives progress messages.
	// Default: slog.Default()
	Logger *slog.Logger
}

// DefaultOptions returns the default dump options.
func DefaultOptions() Options {
	return Options{
		Encoding:   DefaultEncoding,
		Workers:    runtime.NumCPU(),
		Attributes: DefaultAttributes,
		Parser:     parser.NewParser(),
	}
}

func (o *Options) applyDefaults() {
	if o.Encoding == "" {
		o.Encoding = DefaultEncoding
	}
	if o.Workers <= 0 {
		o.Workers = runtime.NumCPU()
	}
	if len(o.Attributes) == 0 {
		o.Attributes = DefaultAttributes
	}
	if o.Parser == nil {
		o.Parser = parser.NewParser()
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
}

// Dump is the result of reading one RPSL dump.
type Dump struct {
	AutNums   []*AutNum      // In dump order
	Classes   map[string]int // Object count per class
	Objects   int            // Total objects read
	Lines     int            // Physical lines read
	Malformed int            // Lines that were not understood
	Duration  time.Duration
}

// ImportCounts returns the number of parsed import attributes and how many
// of them failed.
func (d *Dump) ImportCounts() (total, failed int) {
	for _, an := range d.AutNums {
		total += len(an.Imports)
		failed += an.Failed()
	}
	return total, failed
}

// ParseDump reads an RPSL dump from r and parses the import policy of
// every aut-num object. Objects are read sequentially and parsed on a pool
// of opts.Workers goroutines. Parse failures are reported per aut-num;
// the returned error is only set for read failures or cancellation.
func ParseDump(ctx context.Context, r io.Reader, opts Options) (*Dump, error) {
	opts.applyDefaults()
	start := time.Now()

	decoded, err := NewDecodingReader(r, opts.Encoding)
	if err != nil {
		return nil, err
	}
	reader := NewReader(decoded)

	type job struct {
		index int
		obj   *Object
	}

	dump := &Dump{Classes: make(map[string]int)}
	jobs := make(chan job, opts.Workers*4)

	var (
		mu     sync.Mutex
		parsed = make(map[int]*AutNum)
	)

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer close(jobs)
		index := 0
		for {
			if err := ctx.Err(); err != nil {
				return err
			}
			obj, err := reader.Next()
			if err == io.EOF {
				return nil
			}
			if err != nil {
				return err
			}

			dump.Objects++
			dump.Classes[obj.Class]++
			if obj.Class != ClassAutNum {
				continue
			}

			select {
			case jobs <- job{index: index, obj: obj}:
				index++
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	})

	for i := 0; i < opts.Workers; i++ {
		g.Go(func() error {
			for j := range jobs {
				an, err := ParseAutNum(j.obj, opts.Parser, opts.Attributes)
				if err != nil {
					return err
				}
				mu.Lock()
				parsed[j.index] = an
				mu.Unlock()
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	dump.AutNums = make([]*AutNum, len(parsed))
	for i, an := range parsed {
		dump.AutNums[i] = an
	}
	dump.Lines = reader.Line()
	dump.Malformed = reader.Malformed()
	dump.Duration = time.Since(start)

	total, failed := dump.ImportCounts()
	opts.Logger.Debug("dump parsed",
		"objects", dump.Objects,
		"aut_nums", len(dump.AutNums),
		"imports", total,
		"failed", failed,
		"duration", dump.Duration,
	)

	return dump, nil
}
