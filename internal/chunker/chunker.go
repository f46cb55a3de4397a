// Package chunker flattens an arbitrary JSON value into flat, addressable
// text chunks suitable for indexing.
package chunker

import (
	"crypto/sha256"
	"encoding/hex"
	"sort"
	"strconv"
	"strings"

	"github.com/elijah-alonzo/ai-poc/internal/domain"
)

// rootPath addresses content that sits directly at the document root.
const rootPath = "root"

// scalarSeparator joins the scalar elements of one array into a single chunk.
const scalarSeparator = " | "

// IDFunc derives a chunk identifier from its path and text.
type IDFunc func(path, text string) string

// ContentID is the default IDFunc: a short sha256 digest of path and text.
// Deterministic, so re-flattening identical content yields identical ids and
// repeated upserts overwrite instead of accumulating duplicates.
func ContentID(path, text string) string {
	h := sha256.Sum256([]byte(path + ":" + text))
	return hex.EncodeToString(h[:8])
}

// Flatten decomposes a JSON value (as decoded by encoding/json: map[string]any,
// []any, string, float64, bool, nil) into an ordered chunk sequence using
// ContentID for identity.
func Flatten(value any) []domain.Chunk {
	return FlattenFunc(value, ContentID)
}

// FlattenFunc is Flatten with an injected id generator.
//
// Traversal rules:
//   - nil contributes nothing.
//   - A scalar becomes one chunk; at the document root its path is "root".
//   - An array first contributes one combined chunk joining its scalar
//     elements with " | " (original order), then the recursion into each
//     object/array element at base[<original index>].
//   - An object recurses per key at base.key, keys in sorted order so one
//     input always flattens the same way.
//
// The input is never mutated. Empty arrays, empty objects and all-null
// subtrees legally produce zero chunks.
func FlattenFunc(value any, idFn IDFunc) []domain.Chunk {
	if idFn == nil {
		idFn = ContentID
	}
	return flatten(value, "", idFn, nil)
}

func flatten(value any, basePath string, idFn IDFunc, acc []domain.Chunk) []domain.Chunk {
	switch v := value.(type) {
	case nil:
		return acc

	case map[string]any:
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			acc = flatten(v[k], childPath(basePath, k), idFn, acc)
		}
		return acc

	case []any:
		return flattenList(v, basePath, idFn, acc)

	default:
		path := basePath
		if path == "" {
			path = rootPath
		}
		text := scalarText(v)
		return append(acc, domain.Chunk{Path: path, Text: text, ID: idFn(path, text)})
	}
}

// flattenList emits the combined-scalar chunk first, then recurses into
// object/array elements keeping their original indices.
func flattenList(list []any, basePath string, idFn IDFunc, acc []domain.Chunk) []domain.Chunk {
	path := basePath
	if path == "" {
		path = rootPath
	}

	var scalars []string
	for _, el := range list {
		switch el.(type) {
		case nil, map[string]any, []any:
		default:
			scalars = append(scalars, scalarText(el))
		}
	}
	if len(scalars) > 0 {
		text := strings.Join(scalars, scalarSeparator)
		acc = append(acc, domain.Chunk{Path: path, Text: text, ID: idFn(path, text)})
	}

	for i, el := range list {
		switch el.(type) {
		case map[string]any, []any:
			acc = flatten(el, path+"["+strconv.Itoa(i)+"]", idFn, acc)
		}
	}
	return acc
}

func childPath(base, key string) string {
	if base == "" {
		return key
	}
	return base + "." + key
}

// scalarText renders a scalar in its canonical string form. Numbers use the
// shortest decimal that round-trips, so 1.0 renders as "1".
func scalarText(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(s)
	case int:
		return strconv.Itoa(s)
	default:
		return ""
	}
}
