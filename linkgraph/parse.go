package linkgraph

import (
	"strconv"
	"strings"

	"golang.org/x/xerrors"
)

// ParseRecord parses a whitespace-separated list of page IDs. The first ID is
// the target page and the remaining IDs are the pages that link to it.
//
// ParseRecord returns a nil record and a nil error for blank lines.
func ParseRecord(line string) (*Record, error) {
	tokens := strings.Fields(line)
	if len(tokens) == 0 {
		return nil, nil
	}

	ids := make([]int64, len(tokens))
	for i, tok := range tokens {
		id, err := strconv.ParseInt(tok, 10, 64)
		if err != nil {
			return nil, xerrors.Errorf("token %q: %w", tok, ErrMalformedRecord)
		}
		ids[i] = id
	}

	return &Record{Target: ids[0], Sources: ids[1:]}, nil
}

// Format renders a record in the same format accepted by ParseRecord.
func (r *Record) Format() string {
	var sb strings.Builder
	sb.WriteString(strconv.FormatInt(r.Target, 10))
	for _, src := range r.Sources {
		sb.WriteByte(' ')
		sb.WriteString(strconv.FormatInt(src, 10))
	}
	return sb.String()
}
