package lexical

import (
	"slices"
	"strings"

	"github.com/zeebo/xxh3"

	"github.com/jonwraymond/toolalgo/index"
)

// fingerprint hashes the doc slice so the bleve index is rebuilt only when
// the documents change. Order matters; tag order does not.
func fingerprint(docs []index.SearchDoc) uint64 {
	h := xxh3.New()
	field := func(s string) {
		_, _ = h.WriteString(s)
		_, _ = h.Write([]byte{0})
	}
	for _, doc := range docs {
		field(doc.ID)
		field(doc.DocText)
		field(doc.Summary.Name)
		field(doc.Summary.Namespace)
		field(doc.Summary.ShortDescription)

		tags := slices.Clone(doc.Summary.Tags)
		slices.Sort(tags)
		field(strings.Join(tags, "\x01"))
	}
	return h.Sum64()
}
