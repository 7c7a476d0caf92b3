package autocomplete

import "sort"

// Index is a generic inverted index mapping normalized terms to the
// set of entity ids (of any comparable key type) whose stored name
// contains that term. One Index exists per embedded-place type
// (StopArea, StopPoint, Admin, POI, Way, Line), per SPEC_FULL §4.3.
type Index[T comparable] struct {
	postings map[string]map[T]bool
	termsOf  map[T][]string
}

// NewIndex returns an empty Index.
func NewIndex[T comparable]() *Index[T] {
	return &Index[T]{
		postings: map[string]map[T]bool{},
		termsOf:  map[T][]string{},
	}
}

// Add indexes id under every token of name (already normalized via
// Tokenize, or the caller's own tokenization of aliases/synonyms
// baked into the stored name).
func (idx *Index[T]) Add(id T, terms []string) {
	idx.termsOf[id] = append(idx.termsOf[id], terms...)
	for _, term := range terms {
		if term == "" {
			continue
		}
		set, ok := idx.postings[term]
		if !ok {
			set = map[T]bool{}
			idx.postings[term] = set
		}
		set[id] = true
	}
}

// TermCount returns the number of stored terms (not necessarily
// unique) associated with id, used by the missing-word quality
// penalty.
func (idx *Index[T]) TermCount(id T) int {
	return len(idx.termsOf[id])
}

// FindComplete returns every id whose stored terms contain, for each
// query token, at least one of that token's candidate forms. Ported
// from the original's find_complete: every query token must match
// something, but not every stored term needs a match.
func (idx *Index[T]) FindComplete(query []QueryToken) []T {
	if len(query) == 0 {
		return nil
	}
	var candidates map[T]bool
	for _, qt := range query {
		matched := map[T]bool{}
		for _, form := range qt.Forms {
			for id := range idx.postings[form] {
				matched[id] = true
			}
		}
		if len(matched) == 0 {
			return nil
		}
		if candidates == nil {
			candidates = matched
			continue
		}
		for id := range candidates {
			if !matched[id] {
				delete(candidates, id)
			}
		}
		if len(candidates) == 0 {
			return nil
		}
	}
	return setToSlice(candidates)
}

// FindPartialWithPattern returns every id matching every query token
// except (optionally) the last, which is instead matched as a prefix
// against the stored terms. This is the original's
// find_partial_with_pattern, used when the user is still mid-word.
func (idx *Index[T]) FindPartialWithPattern(query []QueryToken) []T {
	if len(query) == 0 {
		return nil
	}
	var candidates map[T]bool
	for _, qt := range query {
		matched := map[T]bool{}
		if qt.IsLast {
			for term, ids := range idx.postings {
				prefixMatches := false
				for _, form := range qt.Forms {
					if hasPrefix(term, form) {
						prefixMatches = true
						break
					}
				}
				if !prefixMatches {
					continue
				}
				for id := range ids {
					matched[id] = true
				}
			}
		} else {
			for _, form := range qt.Forms {
				for id := range idx.postings[form] {
					matched[id] = true
				}
			}
		}
		if len(matched) == 0 {
			return nil
		}
		if candidates == nil {
			candidates = matched
			continue
		}
		for id := range candidates {
			if !matched[id] {
				delete(candidates, id)
			}
		}
		if len(candidates) == 0 {
			return nil
		}
	}
	return setToSlice(candidates)
}

func hasPrefix(s, prefix string) bool {
	if len(prefix) > len(s) {
		return false
	}
	return s[:len(prefix)] == prefix
}

func setToSlice[T comparable](set map[T]bool) []T {
	out := make([]T, 0, len(set))
	for id := range set {
		out = append(out, id)
	}
	sortForDeterminism(out)
	return out
}

// sortForDeterminism imposes a stable order on the raw candidate set
// before quality scoring reorders it; it only matters for ids that
// are directly comparable (ints), which is the only instantiation
// used in this package.
func sortForDeterminism[T comparable](ids []T) {
	if asInts, ok := any(ids).([]int); ok {
		sort.Ints(asInts)
	}
}
