// Package dump reads message archives exported as JSON Lines.
//
// Each line is one object:
//
//	{"msgid": 12, "group_id": 34, "from_user": 56, "created_at": 1700000000, "text": "..."}
//
// created_at is unix seconds, either a number or an RFC 3339 string.
// Files ending in .zst are zstd-compressed.
package dump

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/klauspost/compress/zstd"
	"github.com/valyala/fastjson"

	"github.com/custodia-labs/querytrans/internal/core/domain"
	"github.com/custodia-labs/querytrans/internal/core/ports/driven"
	"github.com/custodia-labs/querytrans/internal/logger"
)

// maxLineBytes bounds a single message line.
const maxLineBytes = 16 << 20

// Reader implements driven.DumpReader over files on disk.
type Reader struct{}

var _ driven.DumpReader = Reader{}

// NewReader creates a dump reader.
func NewReader() Reader {
	return Reader{}
}

// ReadDump calls Scan and logs how many messages were read.
func (Reader) ReadDump(ctx context.Context, path string, fn func(domain.Message) error) (int, error) {
	n, err := Scan(ctx, path, fn)
	if err != nil {
		return n, err
	}
	logger.Debug("Read %d messages from %s", n, path)
	return n, nil
}

// Scan calls fn for every message in the dump at path, in file order.
// Blank lines are skipped. Scanning stops at the first error from fn.
func Scan(ctx context.Context, path string, fn func(domain.Message) error) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("opening dump: %w", err)
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(path, ".zst") {
		dec, err := zstd.NewReader(f)
		if err != nil {
			return 0, fmt.Errorf("opening zstd stream: %w", err)
		}
		defer dec.Close()
		r = dec
	}

	n, err := scan(ctx, r, fn)
	if err != nil {
		return n, fmt.Errorf("%s: %w", path, err)
	}
	return n, nil
}

func scan(ctx context.Context, r io.Reader, fn func(domain.Message) error) (int, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	var p fastjson.Parser
	count := 0
	line := 0
	for sc.Scan() {
		line++
		if err := ctx.Err(); err != nil {
			return count, err
		}

		raw := sc.Bytes()
		if len(bytes.TrimSpace(raw)) == 0 {
			continue
		}

		v, err := p.ParseBytes(raw)
		if err != nil {
			return count, fmt.Errorf("line %d: %w: %w", line, domain.ErrInvalidInput, err)
		}
		m, err := decodeMessage(v)
		if err != nil {
			return count, fmt.Errorf("line %d: %w", line, err)
		}
		if err := fn(m); err != nil {
			return count, err
		}
		count++
	}
	if err := sc.Err(); err != nil {
		return count, fmt.Errorf("reading dump: %w", err)
	}
	return count, nil
}

func decodeMessage(v *fastjson.Value) (domain.Message, error) {
	if v.Type() != fastjson.TypeObject {
		return domain.Message{}, fmt.Errorf("%w: expected an object, got %s", domain.ErrInvalidInput, v.Type())
	}

	id, err := requireInt(v, "msgid")
	if err != nil {
		return domain.Message{}, err
	}
	group, err := requireInt(v, "group_id")
	if err != nil {
		return domain.Message{}, err
	}
	created, err := decodeTime(v.Get("created_at"))
	if err != nil {
		return domain.Message{}, err
	}

	return domain.Message{
		ID:        id,
		GroupID:   group,
		FromUser:  v.GetInt64("from_user"),
		CreatedAt: created,
		Text:      string(v.GetStringBytes("text")),
	}, nil
}

func requireInt(v *fastjson.Value, key string) (int64, error) {
	field := v.Get(key)
	if field == nil {
		return 0, fmt.Errorf("%w: missing %s", domain.ErrInvalidInput, key)
	}
	n, err := field.Int64()
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %w", domain.ErrInvalidInput, key, err)
	}
	return n, nil
}

func decodeTime(v *fastjson.Value) (time.Time, error) {
	if v == nil {
		return time.Time{}, fmt.Errorf("%w: missing created_at", domain.ErrInvalidInput)
	}
	switch v.Type() {
	case fastjson.TypeNumber:
		secs, err := v.Float64()
		if err != nil {
			return time.Time{}, fmt.Errorf("%w: created_at: %w", domain.ErrInvalidInput, err)
		}
		return time.Unix(int64(secs), 0).UTC(), nil
	case fastjson.TypeString:
		t, err := time.Parse(time.RFC3339, string(v.GetStringBytes()))
		if err != nil {
			return time.Time{}, fmt.Errorf("%w: created_at: %w", domain.ErrInvalidInput, err)
		}
		return t.UTC(), nil
	default:
		return time.Time{}, fmt.Errorf("%w: created_at must be a number or string", domain.ErrInvalidInput)
	}
}
