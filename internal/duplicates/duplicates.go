// Package duplicates partitions scanned files into groups of identical content.
//
// A Set is built once by Find, each Group in it is reduced exactly once by
// Keep, and the remaining members are the files to remove. A Set is owned by
// one stage at a time and is not safe for concurrent use.
package duplicates

import (
	"errors"
	"fmt"

	"github.com/fenilsonani/dupsweep/internal/scanner"
)

var (
	// ErrIndexOutOfRange is returned by Keep for an index outside the group
	ErrIndexOutOfRange = errors.New("keep index out of range")
	// ErrAlreadyResolved is returned by Keep when a file was already kept
	ErrAlreadyResolved = errors.New("group already resolved")
	// ErrTooSmall is returned by Keep when the group no longer holds duplicates
	ErrTooSmall = errors.New("group has fewer than two files")
)

// Group holds the files sharing one checksum, in scan order
type Group struct {
	Checksum string
	Files    []scanner.FileRecord // deletion candidates once Kept is set
	Kept     *scanner.FileRecord
}

// Len returns the number of files still in the group
func (g *Group) Len() int {
	return len(g.Files)
}

// Resolved reports whether a file has been chosen to keep
func (g *Group) Resolved() bool {
	return g.Kept != nil
}

// Keep removes the file at index from the group and records it as kept.
// Every other member becomes a deletion candidate.
func (g *Group) Keep(index int) (scanner.FileRecord, error) {
	if g.Kept != nil {
		return scanner.FileRecord{}, fmt.Errorf("%s: %w", g.Checksum, ErrAlreadyResolved)
	}
	if len(g.Files) < 2 {
		return scanner.FileRecord{}, fmt.Errorf("%s: %w", g.Checksum, ErrTooSmall)
	}
	if index < 0 || index >= len(g.Files) {
		return scanner.FileRecord{}, fmt.Errorf("%s: index %d of %d: %w", g.Checksum, index, len(g.Files), ErrIndexOutOfRange)
	}

	kept := g.Files[index]
	remaining := make([]scanner.FileRecord, 0, len(g.Files)-1)
	remaining = append(remaining, g.Files[:index]...)
	remaining = append(remaining, g.Files[index+1:]...)

	g.Files = remaining
	g.Kept = &kept
	return kept, nil
}

// Size returns the combined size of the files still in the group
func (g *Group) Size() int64 {
	var total int64
	for _, f := range g.Files {
		total += f.Size
	}
	return total
}

// Set maps checksums to duplicate groups and remembers the order in which
// each checksum was first seen
type Set struct {
	order  []string
	groups map[string]*Group
}

// Find groups records by checksum and keeps only checksums shared by two or
// more files. Group order follows the first appearance of each checksum and
// member order follows the input order.
func Find(records []scanner.FileRecord) *Set {
	// Map of hash to list of files with that hash
	hashMap := make(map[string][]scanner.FileRecord)
	var seen []string

	for _, record := range records {
		if _, ok := hashMap[record.Checksum]; !ok {
			seen = append(seen, record.Checksum)
		}
		hashMap[record.Checksum] = append(hashMap[record.Checksum], record)
	}

	set := &Set{groups: make(map[string]*Group)}
	for _, checksum := range seen {
		files := hashMap[checksum]
		if len(files) <= 1 {
			continue // Not a duplicate
		}
		set.order = append(set.order, checksum)
		set.groups[checksum] = &Group{Checksum: checksum, Files: files}
	}

	return set
}

// Len returns the number of groups
func (s *Set) Len() int {
	return len(s.order)
}

// Groups returns the groups in first-seen order
func (s *Set) Groups() []*Group {
	groups := make([]*Group, 0, len(s.order))
	for _, checksum := range s.order {
		groups = append(groups, s.groups[checksum])
	}
	return groups
}

// Get returns the group for a checksum
func (s *Set) Get(checksum string) (*Group, bool) {
	g, ok := s.groups[checksum]
	return g, ok
}

// Checksums returns the checksums of all groups in order
func (s *Set) Checksums() []string {
	return append([]string(nil), s.order...)
}

// Candidates returns every file still held by a group, group by group
func (s *Set) Candidates() []scanner.FileRecord {
	var files []scanner.FileRecord
	for _, g := range s.Groups() {
		files = append(files, g.Files...)
	}
	return files
}

// ReclaimableSize returns the combined size of all candidates
func (s *Set) ReclaimableSize() int64 {
	var total int64
	for _, g := range s.Groups() {
		total += g.Size()
	}
	return total
}

// Unresolved returns the groups that have no kept file yet
func (s *Set) Unresolved() []*Group {
	var groups []*Group
	for _, g := range s.Groups() {
		if !g.Resolved() {
			groups = append(groups, g)
		}
	}
	return groups
}
