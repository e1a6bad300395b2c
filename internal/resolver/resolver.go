package resolver

import (
	"errors"
	"fmt"

	"github.com/fenilsonani/dupsweep/internal/duplicates"
	"github.com/sirupsen/logrus"
)

// ErrAborted is returned by a Chooser when the operator quits the selection
var ErrAborted = errors.New("selection aborted")

// Chooser picks the index of the file to keep within a group
type Chooser interface {
	Choose(group *duplicates.Group) (int, error)
}

// Resolver asks a Chooser about every group and removes the kept file from it
type Resolver struct {
	chooser Chooser
	log     *logrus.Entry
}

// New creates a Resolver
func New(chooser Chooser, log *logrus.Entry) *Resolver {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	return &Resolver{
		chooser: chooser,
		log:     log.WithField("component", "resolver"),
	}
}

// Resolve walks the unresolved groups of set in order. After it returns nil,
// each group holds exactly its deletion candidates. An error stops the walk;
// groups already handled stay resolved.
func (r *Resolver) Resolve(set *duplicates.Set) error {
	for _, group := range set.Unresolved() {
		index, err := r.chooser.Choose(group)
		if err != nil {
			return fmt.Errorf("choosing file to keep for %s: %w", group.Checksum, err)
		}

		kept, err := group.Keep(index)
		if err != nil {
			return err
		}

		r.log.WithFields(logrus.Fields{
			"checksum":   group.Checksum,
			"kept":       kept.Path,
			"candidates": group.Len(),
		}).Debug("group resolved")
	}

	return nil
}
