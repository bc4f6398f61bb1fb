// Package parserpool provides a pool of gnparser instances used to
// canonicalize free-text scientific names before they are sent to the
// service. This is a pure package - parsing is computation, not I/O.
package parserpool

import (
	"runtime"

	"github.com/gnames/gnparser"
	"github.com/gnames/gnparser/ent/parsed"
)

// Pool provides gnparser instances for concurrent name parsing.
type Pool interface {
	// Parse parses a scientific name string. It retrieves a parser
	// from the pool, parses the name, and returns the parser to the
	// pool. This method is safe for concurrent use.
	Parse(nameString string) parsed.Parsed

	// Canonical returns the canonical simple form of a name (authorship
	// and annotations stripped). Names gnparser cannot parse are
	// returned unchanged, so lookups still reach the service.
	Canonical(nameString string) string

	// Close shuts down the parser pool and releases resources.
	// After calling Close, the pool should not be used.
	Close()
}

type poolImpl struct {
	ch       chan gnparser.GNparser
	poolSize int
}

// New creates a parser pool with the specified number of workers.
// If jobsNum is 0, it defaults to runtime.NumCPU().
func New(jobsNum int) Pool {
	poolSize := jobsNum
	if poolSize == 0 {
		poolSize = runtime.NumCPU()
	}

	cfg := gnparser.NewConfig()
	ch := gnparser.NewPool(cfg, poolSize)

	return &poolImpl{
		ch:       ch,
		poolSize: poolSize,
	}
}

func (p *poolImpl) Parse(nameString string) parsed.Parsed {
	// Get a parser from the pool (blocks if all parsers are busy)
	parser := <-p.ch
	res := parser.ParseName(nameString)
	p.ch <- parser
	return res
}

func (p *poolImpl) Canonical(nameString string) string {
	res := p.Parse(nameString)
	if !res.Parsed || res.Canonical == nil {
		return nameString
	}
	return res.Canonical.Simple
}

func (p *poolImpl) Close() {
	if p.ch != nil {
		close(p.ch)
		// Drain the channel
		for range p.ch {
		}
	}
}
