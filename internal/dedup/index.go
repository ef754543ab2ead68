package dedup

import (
	"go-lead-sourcer/internal/models"
)

// Index maps a normalized profile URL to where that profile lives in a
// store (a sheet row number, a database id). A hit means update in place.
type Index[Ref any] struct {
	refs map[string]Ref
}

func NewIndex[Ref any]() *Index[Ref] {
	return &Index[Ref]{refs: make(map[string]Ref)}
}

// Lookup normalizes url before looking it up
func (ix *Index[Ref]) Lookup(url string) (Ref, bool) {
	ref, ok := ix.refs[models.NormalizeURL(url)]
	return ref, ok
}

// Put records (or moves) a profile. Empty URLs are ignored.
func (ix *Index[Ref]) Put(url string, ref Ref) {
	key := models.NormalizeURL(url)
	if key == "" {
		return
	}
	ix.refs[key] = ref
}

// PutFirst records a profile only if it is not indexed yet, so the
// earliest row wins when a store already holds duplicates.
func (ix *Index[Ref]) PutFirst(url string, ref Ref) {
	key := models.NormalizeURL(url)
	if key == "" {
		return
	}
	if _, ok := ix.refs[key]; !ok {
		ix.refs[key] = ref
	}
}

func (ix *Index[Ref]) Len() int {
	return len(ix.refs)
}
