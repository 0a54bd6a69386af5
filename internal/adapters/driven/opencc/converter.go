// Package opencc adapts the OpenCC dictionaries to driven.Converter.
package opencc

import (
	"fmt"
	"sync"

	"github.com/longbridgeapp/opencc"

	"github.com/custodia-labs/querytrans/internal/core/domain"
	"github.com/custodia-labs/querytrans/internal/core/ports/driven"
	"github.com/custodia-labs/querytrans/internal/logger"
)

// Ensure Converter implements the interface.
var _ driven.Converter = (*Converter)(nil)

// Converter converts text between Chinese orthographies. Dictionaries for
// a scheme are loaded on first use and cached.
type Converter struct {
	mu         sync.Mutex
	converters map[domain.Scheme]*schemeConverter
}

type schemeConverter struct {
	mu sync.Mutex
	cc *opencc.OpenCC
}

// NewConverter creates a converter and eagerly loads schemes, so a
// misconfigured scheme fails at startup rather than on the first query.
func NewConverter(schemes ...domain.Scheme) (*Converter, error) {
	c := &Converter{converters: make(map[domain.Scheme]*schemeConverter)}
	for _, scheme := range schemes {
		if _, err := c.get(scheme); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Convert returns text converted under scheme.
func (c *Converter) Convert(scheme domain.Scheme, text string) (string, error) {
	sc, err := c.get(scheme)
	if err != nil {
		return "", err
	}

	sc.mu.Lock()
	defer sc.mu.Unlock()
	return sc.cc.Convert(text)
}

func (c *Converter) get(scheme domain.Scheme) (*schemeConverter, error) {
	if !scheme.IsValid() {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownScheme, scheme)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if sc, ok := c.converters[scheme]; ok {
		return sc, nil
	}

	logger.Debug("Loading OpenCC dictionaries for %s", scheme)
	cc, err := opencc.New(scheme.String())
	if err != nil {
		return nil, fmt.Errorf("load opencc %s: %w", scheme, err)
	}
	sc := &schemeConverter{cc: cc}
	c.converters[scheme] = sc
	return sc, nil
}
