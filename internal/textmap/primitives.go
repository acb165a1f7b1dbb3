package textmap

import "corpusengine"

// SkipEntriesBefore implements C2's skip_entries_before: advances entryIdx
// past all entries whose end <= pos or whose length is zero. entryEnd is
// kept synchronised with the entry entryIdx now points at (or left as-is
// when entryIdx runs off the end of the map). inEntry is cleared to false if
// any advance occurred, since a previous "we are inside this entry" claim no
// longer holds for a fresh entry.
func SkipEntriesBefore(entries []Entry, entryIdx *int, entryEnd *uint64, pos uint64, inEntry *bool) {
	advanced := false
	for *entryIdx < len(entries) {
		e := entries[*entryIdx]
		if e.Len != 0 && e.End() > pos {
			break
		}
		*entryIdx++
		advanced = true
	}
	if *entryIdx < len(entries) {
		*entryEnd = entries[*entryIdx].End()
	}
	if advanced {
		*inEntry = false
	}
}

// EntryBeginsAt implements C2's entry_begins_at.
func EntryBeginsAt(entries []Entry, entryIdx int, pos uint64) bool {
	return entryIdx < len(entries) && entries[entryIdx].Pos == pos
}

// RemoveEmptyEntries implements C2's remove_empty_entries: drops entries all
// of whose referenced tokens are empty. tokens is indexed the same way the
// entry's Pos/Len are (token indices for a tokenised corpus).
func RemoveEmptyEntries(entries []Entry, tokens []string) []Entry {
	out := entries[:0:0]
	for _, e := range entries {
		if e.Len == 0 {
			continue
		}
		allEmpty := true
		for i := e.Pos; i < e.End() && i < uint64(len(tokens)); i++ {
			if tokens[i] != "" {
				allEmpty = false
				break
			}
		}
		if allEmpty {
			continue
		}
		out = append(out, e)
	}
	return out
}

// UpdatePosition implements C2's update_position: when the entry at
// entryIdx begins exactly at pos, its position is decremented by removed.
// Fails with PositionTooSmall if removed exceeds the entry's current
// position.
func UpdatePosition(entries []Entry, entryIdx int, pos uint64, removed uint64) error {
	if entryIdx < 0 || entryIdx >= len(entries) {
		return nil
	}
	e := &entries[entryIdx]
	if e.Pos != pos {
		return nil
	}
	if removed > e.Pos {
		return corpusengine.NewError(corpusengine.KindPositionTooSmall, "textmap.UpdatePosition",
			"removal exceeds entry position", nil)
	}
	e.Pos -= removed
	return nil
}

// RemoveTokenFromLength implements C2's remove_token_from_length: when
// tokenIdx lies inside the half-open origin range [originFirst, originLast),
// the entry's length is decremented by one.
func RemoveTokenFromLength(entries []Entry, entryIdx int, originFirst, originLast, tokenIdx uint64) {
	if entryIdx < 0 || entryIdx >= len(entries) {
		return
	}
	if tokenIdx < originFirst || tokenIdx >= originLast {
		return
	}
	e := &entries[entryIdx]
	if e.Len > 0 {
		e.Len--
	}
}

// RemoveEmptySentences drops sentence entries with zero length, mirroring
// RemoveEmptyEntries for the value-less sentence map.
func RemoveEmptySentences(entries []SentenceEntry) []SentenceEntry {
	out := entries[:0:0]
	for _, e := range entries {
		if e.Len != 0 {
			out = append(out, e)
		}
	}
	return out
}
